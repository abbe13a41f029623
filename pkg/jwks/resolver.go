package jwks

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"time"

	jose "github.com/go-jose/go-jose/v4"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/nao1215/unmarky/pkg/httpclient"
)

// 鍵解決の失敗理由。呼び出し側はerrors.Isで判別できるが、
// クライアントへは一律401として返すこと（詳細はサーバーログのみに残す）。
var (
	// ErrKeyIDMissing はトークンヘッダーにkidが含まれていない場合のエラー。
	ErrKeyIDMissing = errors.New("トークンヘッダーにkidがありません")
	// ErrKeySetFetch は鍵セットドキュメントの取得に失敗した場合のエラー。
	ErrKeySetFetch = errors.New("鍵セットの取得に失敗しました")
	// ErrKeyNotFound は鍵セット内に該当するkidの鍵が存在しない場合のエラー。
	ErrKeyNotFound = errors.New("鍵セットに該当する鍵がありません")
)

const (
	// defaultCacheSize は鍵キャッシュの上限エントリ数。
	// 鍵ローテーションの頻度は低いため小さな値で十分。
	defaultCacheSize = 16
	// fetchTimeout は鍵セット取得（再試行を含む）全体のタイムアウト。
	fetchTimeout = 5 * time.Second
	// retryDelay は鍵セット取得を再試行するまでの待ち時間。
	retryDelay = 500 * time.Millisecond
)

// Resolver はkid（鍵ID）からES256署名検証用の公開鍵を解決する。
//
// 解決済みの鍵はLRUキャッシュに保持し、キャッシュミス時のみ
// 鍵セットエンドポイントからJWKSドキュメントを取得する。
// 同一kidへの同時ミスはsingleflightで1回の取得にまとめる。
// 状態はすべてResolverインスタンスが所有し、パッケージレベルの可変状態を持たない。
type Resolver struct {
	// client は鍵セットエンドポイントへのHTTPクライアント。
	client *httpclient.Client
	// cache はkidから公開鍵へのLRUキャッシュ。
	cache *lru.Cache[string, *ecdsa.PublicKey]
	// group は同一kidの同時取得をまとめるsingleflightグループ。
	group singleflight.Group
}

// NewResolver は指定された鍵セットURLを参照するResolverを生成する。
func NewResolver(jwksURL string) (*Resolver, error) {
	if jwksURL == "" {
		return nil, errors.New("鍵セットURLが設定されていません")
	}
	cache, err := lru.New[string, *ecdsa.PublicKey](defaultCacheSize)
	if err != nil {
		return nil, fmt.Errorf("鍵キャッシュの作成に失敗: %w", err)
	}
	return &Resolver{
		client: httpclient.New(jwksURL, fetchTimeout),
		cache:  cache,
	}, nil
}

// Key はkidに対応するES256検証用の公開鍵を返す。
// キャッシュヒット時は即座に返し、ミス時は鍵セットを取得して解決する。
func (r *Resolver) Key(ctx context.Context, kid string) (*ecdsa.PublicKey, error) {
	if kid == "" {
		return nil, ErrKeyIDMissing
	}

	if key, ok := r.cache.Get(kid); ok {
		return key, nil
	}

	v, err, _ := r.group.Do(kid, func() (any, error) {
		// singleflight待機中に先行の取得が完了している場合がある
		if key, ok := r.cache.Get(kid); ok {
			return key, nil
		}

		key, err := r.fetchKey(ctx, kid)
		if err != nil {
			return nil, err
		}
		r.cache.Add(kid, key)
		return key, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*ecdsa.PublicKey), nil
}

// fetchKey は鍵セットドキュメントを取得し、kidに一致する公開鍵を取り出す。
// 取得失敗時は一度だけ待機して再試行する。タイムアウトはfetchTimeoutで全体を制限する。
func (r *Resolver) fetchKey(ctx context.Context, kid string) (*ecdsa.PublicKey, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	var keySet jose.JSONWebKeySet
	if err := r.client.GetJSON(ctx, "", &keySet); err != nil {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", ErrKeySetFetch, err)
		case <-time.After(retryDelay):
		}
		if err := r.client.GetJSON(ctx, "", &keySet); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrKeySetFetch, err)
		}
	}

	for _, k := range keySet.Keys {
		if k.KeyID != kid {
			continue
		}
		pub, ok := k.Key.(*ecdsa.PublicKey)
		if !ok {
			// ES256以外の鍵種別は対象外
			continue
		}
		return pub, nil
	}
	return nil, fmt.Errorf("%w: kid=%s", ErrKeyNotFound, kid)
}
