// デモデータ投入コマンドのエントリポイント。
// Demo University向けの飲食店・住居・お知らせなどのサンプルデータを投入する。
package main

import (
	"context"
	"log"
	"os"

	"github.com/google/uuid"

	"github.com/nao1215/unmarky/internal/api"
	"github.com/nao1215/unmarky/internal/api/db"
	"github.com/nao1215/unmarky/internal/config"
)

// demoUniversity はデモデータが属する大学名。
const demoUniversity = "Demo University"

func main() {
	cfg, err := config.Load(os.Getenv("UNMARKY_CONFIG"))
	if err != nil {
		log.Fatalf("設定の読み込みに失敗: %v", err)
	}

	sqlDB, err := api.OpenDB(cfg.DBPath)
	if err != nil {
		log.Fatalf("データベースの初期化に失敗: %v", err)
	}
	defer func() { _ = sqlDB.Close() }()

	ctx := context.Background()
	queries := db.New(sqlDB)

	if err := seedProfile(ctx, queries); err != nil {
		log.Fatalf("プロファイルの投入に失敗: %v", err)
	}
	if err := seedAnnouncements(ctx, queries); err != nil {
		log.Fatalf("お知らせの投入に失敗: %v", err)
	}
	if err := seedFood(ctx, queries); err != nil {
		log.Fatalf("飲食店の投入に失敗: %v", err)
	}
	if err := seedAccommodations(ctx, queries); err != nil {
		log.Fatalf("住居物件の投入に失敗: %v", err)
	}

	log.Printf("%s のデモデータを投入しました: %s", demoUniversity, cfg.DBPath)
}

// seedProfile はデモユーザーのプロファイルを投入する。
func seedProfile(ctx context.Context, queries *db.Queries) error {
	return queries.CreateProfile(ctx, db.CreateProfileParams{
		ID:                  "demo-user-1",
		FullName:            "Demo Student",
		UniversityName:      demoUniversity,
		Department:          "Computer Science",
		Class:               "3rd Year",
		MobileNumber:        "9876543210",
		OnboardingCompleted: true,
	})
}

// seedAnnouncements はデモのお知らせを投入する。
func seedAnnouncements(ctx context.Context, queries *db.Queries) error {
	announcements := []db.CreateAnnouncementParams{
		{
			Title:   "Welcome to the new semester!",
			Content: "Classes begin Monday. Check your department notice board for schedules.",
		},
		{
			Title:   "Campus fest registrations open",
			Content: "Register your team for the annual campus fest before the end of the month.",
		},
	}
	for _, a := range announcements {
		a.ID = uuid.New().String()
		a.UniversityName = demoUniversity
		if err := queries.CreateAnnouncement(ctx, a); err != nil {
			return err
		}
	}
	return nil
}

// seedFood はデモの飲食店とメニューを投入する。
func seedFood(ctx context.Context, queries *db.Queries) error {
	restaurants := []db.CreateFoodListingParams{
		{
			Name:        "Campus Bites",
			Description: "Quick bites and snacks right next to the main gate.",
			Cuisine:     "Fast Food",
			Tags:        "Fast Food, Snacks, Budget",
			Address:     "Shop 3, University Road",
			Phone:       "9800000001",
			Timing:      "8:00 AM - 10:00 PM",
			PriceRange:  "₹50 - ₹200",
			Rating:      4.3,
			ReviewCount: 128,
			Location:    "Main Gate",
		},
		{
			Name:        "The Italian Corner",
			Description: "Wood-fired pizzas and fresh pasta.",
			Cuisine:     "Italian",
			Tags:        "Pizza, Pasta, Date Spot",
			Address:     "12 College Street",
			Phone:       "9800000002",
			Timing:      "11:00 AM - 11:00 PM",
			PriceRange:  "₹200 - ₹600",
			Rating:      4.6,
			ReviewCount: 86,
			Location:    "College Street",
		},
		{
			Name:        "Wok This Way",
			Description: "Hakka noodles, fried rice and momos.",
			Cuisine:     "Chinese",
			Tags:        "Chinese, Momos, Takeaway",
			Address:     "Food Court, Block B",
			Phone:       "9800000003",
			Timing:      "12:00 PM - 10:00 PM",
			PriceRange:  "₹100 - ₹350",
			Rating:      4.1,
			ReviewCount: 73,
			Location:    "Food Court",
		},
		{
			Name:        "Green Bowl Cafe",
			Description: "Salads, smoothie bowls and healthy wraps.",
			Cuisine:     "Healthy",
			Tags:        "Vegetarian, Healthy, Cafe",
			Address:     "Library Lane",
			Phone:       "9800000004",
			Timing:      "9:00 AM - 9:00 PM",
			PriceRange:  "₹150 - ₹400",
			Rating:      4.4,
			ReviewCount: 51,
			Location:    "Library Lane",
		},
		{
			Name:        "Chai Point Express",
			Description: "Cutting chai, coffee and bun maska all day.",
			Cuisine:     "Beverages",
			Tags:        "Tea, Coffee, Late Night",
			Address:     "Hostel Circle",
			Phone:       "9800000005",
			Timing:      "6:00 AM - 1:00 AM",
			PriceRange:  "₹20 - ₹120",
			Rating:      4.7,
			ReviewCount: 210,
			Location:    "Hostel Circle",
		},
	}

	firstRestaurantID := ""
	for i, r := range restaurants {
		r.ID = uuid.New().String()
		r.UniversityName = demoUniversity
		if i == 0 {
			firstRestaurantID = r.ID
		}
		if err := queries.CreateFoodListing(ctx, r); err != nil {
			return err
		}
	}

	menu := []db.CreateMenuItemParams{
		{
			Name:        "Veg Grilled Sandwich",
			Description: "Triple-layer sandwich with mint chutney.",
			Price:       80,
			Category:    "Starters",
			IsVeg:       true,
			IsAvailable: true,
			Rating:      4.2,
			ReviewCount: 34,
		},
		{
			Name:        "Chicken Roll",
			Description: "Egg paratha roll with spicy chicken filling.",
			Price:       120,
			Category:    "Main Course",
			IsVeg:       false,
			IsAvailable: true,
			Rating:      4.5,
			ReviewCount: 58,
		},
		{
			Name:        "Cold Coffee",
			Description: "Blended iced coffee with ice cream.",
			Price:       90,
			Category:    "Drinks",
			IsVeg:       true,
			IsAvailable: true,
			Rating:      4.6,
			ReviewCount: 77,
		},
		{
			Name:        "Chocolate Brownie",
			Description: "Warm brownie with chocolate sauce.",
			Price:       100,
			Category:    "Desserts",
			IsVeg:       true,
			IsAvailable: true,
			Rating:      4.4,
			ReviewCount: 29,
		},
	}
	for _, m := range menu {
		m.ID = uuid.New().String()
		m.RestaurantID = firstRestaurantID
		if err := queries.CreateMenuItem(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

// seedAccommodations はデモの住居物件を投入する。
func seedAccommodations(ctx context.Context, queries *db.Queries) error {
	listings := []db.CreateAccommodationParams{
		{
			Name:        "Sunrise PG for Boys",
			Type:        "PG",
			Description: "Furnished rooms with meals, 5 minutes from campus.",
			Address:     "21 University Road",
			Phone:       "9810000001",
			Amenities:   "WiFi, Laundry, Meals, Power Backup",
			Images:      `["https://example.com/img/sunrise-1.jpg","https://example.com/img/sunrise-2.jpg"]`,
			MinPrice:    6000,
			MaxPrice:    9000,
			RentRange:   "₹6,000 - ₹9,000",
			Rating:      4.2,
			ReviewCount: 41,
			Location:    "University Road",
			Contact:     "Mr. Sharma",
		},
		{
			Name:        "Scholar's Haven",
			Type:        "Hostel",
			Description: "Quiet hostel with study rooms and a mess.",
			Address:     "4 Library Lane",
			Phone:       "9810000002",
			Amenities:   "WiFi, Mess, Study Room, CCTV",
			Images:      `["https://example.com/img/scholars-haven.jpg"]`,
			MinPrice:    4500,
			MaxPrice:    7000,
			RentRange:   "₹4,500 - ₹7,000",
			Rating:      4.5,
			ReviewCount: 63,
			Location:    "Library Lane",
			Contact:     "Warden Office",
		},
		{
			Name:        "Campus View Apartments",
			Type:        "Apartment",
			Description: "2BHK shared apartments overlooking the campus.",
			Address:     "88 College Street",
			Phone:       "9810000003",
			Amenities:   "WiFi, Parking, Kitchen, Gym",
			Images:      `["https://example.com/img/campus-view-1.jpg","https://example.com/img/campus-view-2.jpg"]`,
			MinPrice:    12000,
			MaxPrice:    18000,
			RentRange:   "₹12,000 - ₹18,000",
			Rating:      4.6,
			ReviewCount: 27,
			Location:    "College Street",
			Contact:     "Ms. Verma",
		},
		{
			Name:        "Comfort Stay Girls PG",
			Type:        "PG",
			Description: "Secure PG for girls with home-cooked meals.",
			Address:     "15 Hostel Circle",
			Phone:       "9810000004",
			Amenities:   "WiFi, Meals, Security, Laundry",
			Images:      `["https://example.com/img/comfort-stay.jpg"]`,
			MinPrice:    7000,
			MaxPrice:    10000,
			RentRange:   "₹7,000 - ₹10,000",
			Rating:      4.4,
			ReviewCount: 38,
			Location:    "Hostel Circle",
			Contact:     "Mrs. Gupta",
		},
		{
			Name:        "Budget Beds Hostel",
			Type:        "Hostel",
			Description: "Affordable dorm beds for students on a budget.",
			Address:     "2 Market Road",
			Phone:       "9810000005",
			Amenities:   "WiFi, Locker, Common Room",
			Images:      `["https://example.com/img/budget-beds.jpg"]`,
			MinPrice:    3000,
			MaxPrice:    4500,
			RentRange:   "₹3,000 - ₹4,500",
			Rating:      3.9,
			ReviewCount: 52,
			Location:    "Market Road",
			Contact:     "Front Desk",
		},
	}
	for _, l := range listings {
		l.ID = uuid.New().String()
		l.UniversityName = demoUniversity
		if err := queries.CreateAccommodation(ctx, l); err != nil {
			return err
		}
	}
	return nil
}
