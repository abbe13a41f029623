package db

import "time"

// Profile はprofilesテーブルの行。IDは上流ID基盤のサブジェクトID。
type Profile struct {
	ID                  string
	FullName            string
	UniversityName      string
	Department          string
	Class               string
	MobileNumber        string
	IDCardURL           string
	IsVerified          bool
	OnboardingCompleted bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// MarketplaceItem はmarketplace_itemsテーブルの行。
type MarketplaceItem struct {
	ID               string
	SellerID         string
	Title            string
	Description      string
	Price            float64
	Category         string
	Condition        string
	ManufacturedYear string
	IsNegotiable     bool
	ImageURL         string
	UniversityName   string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// LostFoundItem はlost_foundテーブルの行。Typeは "lost" または "found"。
type LostFoundItem struct {
	ID             string
	ReporterID     string
	ItemName       string
	Description    string
	Type           string
	Location       string
	ImageURL       string
	Status         string
	UniversityName string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Announcement はannouncementsテーブルの行。
type Announcement struct {
	ID             string
	Title          string
	Content        string
	UniversityName string
	CreatedAt      time.Time
}

// SocialPost はsocial_postsテーブルの行。
type SocialPost struct {
	ID             string
	AuthorID       string
	Content        string
	LikesCount     int64
	UniversityName string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// FoodListing はfood_listingsテーブルの行（レストラン）。
type FoodListing struct {
	ID             string
	Name           string
	Description    string
	Cuisine        string
	Tags           string
	Address        string
	Phone          string
	Timing         string
	PriceRange     string
	Rating         float64
	ReviewCount    int64
	ImageURL       string
	Location       string
	UniversityName string
	CreatedAt      time.Time
}

// MenuItem はmenu_itemsテーブルの行。
type MenuItem struct {
	ID           string
	RestaurantID string
	Name         string
	Description  string
	Price        float64
	Category     string
	ImageURL     string
	IsVeg        bool
	IsAvailable  bool
	Rating       float64
	ReviewCount  int64
	CreatedAt    time.Time
}

// AccommodationListing はaccommodation_listingsテーブルの行。
// Typeは "PG" / "Hostel" / "Apartment" のいずれか。
type AccommodationListing struct {
	ID             string
	Name           string
	Type           string
	Description    string
	Address        string
	Phone          string
	Amenities      string
	Images         string
	MinPrice       float64
	MaxPrice       float64
	RentRange      string
	Rating         float64
	ReviewCount    int64
	Location       string
	Contact        string
	UniversityName string
	CreatedAt      time.Time
}
