package store

import (
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"

	"github.com/orderkart/orderkart/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Bucket and key layout. The cache bucket mirrors the three logical keys the
// client kept in browser storage: product list, cart, last-sync marker.
var (
	cacheBucket    = []byte("cache")
	settingsBucket = []byte("settings")
	ordersBucket   = []byte("orders")

	productsKey   = []byte("products")
	cartKey       = []byte("cart")
	lastSyncedKey = []byte("last_synced")
)

// Store is the bbolt-backed durable key-value store holding the catalog
// cache, the cart, exported order records and runtime settings.
type Store struct {
	db *bolt.DB
}

// Open opens (creating if needed) the store file and ensures all buckets
// exist.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 3 * time.Second})
	if err != nil {
		return nil, errors.Wrap(err, "open store")
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{cacheBucket, settingsBucket, ordersBucket} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "init store buckets")
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Products returns the cached flat product list. A missing key is an empty
// list, not an error.
func (s *Store) Products() ([]domain.Product, error) {
	var products []domain.Product
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(cacheBucket).Get(productsKey)
		if data == nil {
			return nil
		}
		return json.Unmarshal(data, &products)
	})
	if err != nil {
		return nil, errors.Wrap(err, "load products")
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}

// PutProducts replaces the cached product list.
func (s *Store) PutProducts(products []domain.Product) error {
	data, err := json.Marshal(products)
	if err != nil {
		return errors.Wrap(err, "encode products")
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(cacheBucket).Put(productsKey, data)
	})
}

// ReplaceCatalog writes the new product list and the last-sync marker in one
// transaction, so a failed write leaves the previous cache intact.
func (s *Store) ReplaceCatalog(products []domain.Product, lastSynced string) error {
	data, err := json.Marshal(products)
	if err != nil {
		return errors.Wrap(err, "encode products")
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(cacheBucket)
		if err := b.Put(productsKey, data); err != nil {
			return err
		}
		return b.Put(lastSyncedKey, []byte(lastSynced))
	})
}

// Cart returns the persisted cart; missing key means empty cart.
func (s *Store) Cart() ([]domain.CartItem, error) {
	var items []domain.CartItem
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(cacheBucket).Get(cartKey)
		if data == nil {
			return nil
		}
		return json.Unmarshal(data, &items)
	})
	if err != nil {
		return nil, errors.Wrap(err, "load cart")
	}
	if items == nil {
		items = []domain.CartItem{}
	}
	return items, nil
}

// PutCart replaces the persisted cart.
func (s *Store) PutCart(items []domain.CartItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return errors.Wrap(err, "encode cart")
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(cacheBucket).Put(cartKey, data)
	})
}

// LastSynced returns the last-sync marker, empty when never synced. The
// marker is a plain string, not JSON.
func (s *Store) LastSynced() (string, error) {
	var v string
	err := s.db.View(func(tx *bolt.Tx) error {
		if data := tx.Bucket(cacheBucket).Get(lastSyncedKey); data != nil {
			v = string(data)
		}
		return nil
	})
	return v, err
}

// ClearCache removes the cart, the product cache and the last-sync marker as
// one atomic action. Orders and settings survive.
func (s *Store) ClearCache() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(cacheBucket)
		for _, key := range [][]byte{productsKey, cartKey, lastSyncedKey} {
			if err := b.Delete(key); err != nil {
				return err
			}
		}
		return nil
	})
}

// PutOrder appends an exported-order record keyed by its snowflake id.
func (s *Store) PutOrder(order *domain.Order) error {
	data, err := json.Marshal(order)
	if err != nil {
		return errors.Wrap(err, "encode order")
	}
	key := []byte(fmt.Sprintf("%020d", order.ID))
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(ordersBucket).Put(key, data)
	})
}

// Orders returns up to limit most recent order records, newest first.
func (s *Store) Orders(limit int) ([]domain.Order, error) {
	if limit <= 0 {
		limit = 50
	}
	orders := make([]domain.Order, 0, limit)
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(ordersBucket).Cursor()
		for k, v := c.Last(); k != nil && len(orders) < limit; k, v = c.Prev() {
			var o domain.Order
			if err := json.Unmarshal(v, &o); err != nil {
				return err
			}
			orders = append(orders, o)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "load orders")
	}
	return orders, nil
}

// GetSetting returns a raw settings value by "category.name" key, empty when
// absent.
func (s *Store) GetSetting(category, name string) string {
	var v string
	_ = s.db.View(func(tx *bolt.Tx) error {
		if data := tx.Bucket(settingsBucket).Get([]byte(category + "." + name)); data != nil {
			v = string(data)
		}
		return nil
	})
	return v
}

// PutSetting stores a settings value under "category.name".
func (s *Store) PutSetting(category, name, value string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(settingsBucket).Put([]byte(category+"."+name), []byte(value))
	})
}
