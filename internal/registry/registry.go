package registry

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"time"

	bolt "go.etcd.io/bbolt"
)

// RegistryFile is the registry database name in the project directory.
const RegistryFile = ".envseal.db"

// Bucket names
var (
	ConfigBucket = []byte("config") // version, timestamps
	IndexBucket  = []byte("index")  // tracked sealed files for status/ls
)

// Config keys
var (
	ConfigVersion  = []byte("version")
	ConfigCreated  = []byte("created")
	ConfigModified = []byte("modified")
)

// Entry describes one tracked sealed file. Hash is the SHA-256 of the
// ciphertext at the time of the last track or commit, used by status to
// detect out-of-band modification without any passphrase.
type Entry struct {
	Path    string    `json:"path"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"modTime"`
	Hash    string    `json:"hash"`
}

// Registry is the BBolt-backed index of tracked sealed files
type Registry struct {
	db *bolt.DB
}

// Open opens or creates the registry database
func Open(path string) (*Registry, error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open registry: %w", err)
	}

	return &Registry{db: db}, nil
}

// Close closes the database
func (r *Registry) Close() error {
	return r.db.Close()
}

// Initialize creates the bucket structure for a new registry
func (r *Registry) Initialize() error {
	return r.db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{ConfigBucket, IndexBucket} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
		}

		config := tx.Bucket(ConfigBucket)
		if err := config.Put(ConfigVersion, []byte("1")); err != nil {
			return err
		}

		now := time.Now()
		created, _ := now.MarshalBinary()
		if err := config.Put(ConfigCreated, created); err != nil {
			return err
		}
		return config.Put(ConfigModified, created)
	})
}

// IsInitialized checks if the registry has been initialized
func (r *Registry) IsInitialized() (bool, error) {
	var initialized bool
	err := r.db.View(func(tx *bolt.Tx) error {
		config := tx.Bucket(ConfigBucket)
		if config != nil && config.Get(ConfigVersion) != nil {
			initialized = true
		}
		return nil
	})
	return initialized, err
}

// Track adds or refreshes a sealed file's entry in the index
func (r *Registry) Track(entry Entry) error {
	return r.db.Update(func(tx *bolt.Tx) error {
		index := tx.Bucket(IndexBucket)
		if index == nil {
			return fmt.Errorf("index bucket not found")
		}
		data, err := json.Marshal(entry)
		if err != nil {
			return err
		}
		if err := index.Put([]byte(entry.Path), data); err != nil {
			return err
		}
		return touchModified(tx)
	})
}

// Untrack removes a sealed file from the index. Returns false if the path
// was not tracked.
func (r *Registry) Untrack(path string) (bool, error) {
	removed := false
	err := r.db.Update(func(tx *bolt.Tx) error {
		index := tx.Bucket(IndexBucket)
		if index == nil {
			return fmt.Errorf("index bucket not found")
		}
		if index.Get([]byte(path)) == nil {
			return nil
		}
		if err := index.Delete([]byte(path)); err != nil {
			return err
		}
		removed = true
		return touchModified(tx)
	})
	return removed, err
}

// Get returns a single tracked entry, or nil if the path is not tracked
func (r *Registry) Get(path string) (*Entry, error) {
	var entry *Entry
	err := r.db.View(func(tx *bolt.Tx) error {
		index := tx.Bucket(IndexBucket)
		if index == nil {
			return fmt.Errorf("index bucket not found")
		}
		data := index.Get([]byte(path))
		if data == nil {
			return nil
		}
		entry = &Entry{}
		return json.Unmarshal(data, entry)
	})
	return entry, err
}

// List returns all tracked entries
func (r *Registry) List() ([]Entry, error) {
	var entries []Entry
	err := r.db.View(func(tx *bolt.Tx) error {
		index := tx.Bucket(IndexBucket)
		if index == nil {
			return fmt.Errorf("index bucket not found")
		}
		return index.ForEach(func(k, v []byte) error {
			var entry Entry
			if err := json.Unmarshal(v, &entry); err != nil {
				return err
			}
			entries = append(entries, entry)
			return nil
		})
	})
	return entries, err
}

// GetModified retrieves the last modified timestamp
func (r *Registry) GetModified() (time.Time, error) {
	var modified time.Time
	err := r.db.View(func(tx *bolt.Tx) error {
		config := tx.Bucket(ConfigBucket)
		if config == nil {
			return fmt.Errorf("config bucket not found")
		}
		data := config.Get(ConfigModified)
		if data == nil {
			return fmt.Errorf("modified time not found")
		}
		return modified.UnmarshalBinary(data)
	})
	return modified, err
}

func touchModified(tx *bolt.Tx) error {
	config := tx.Bucket(ConfigBucket)
	if config == nil {
		return nil
	}
	now := time.Now()
	modified, _ := now.MarshalBinary()
	return config.Put(ConfigModified, modified)
}

// EntryFromFile builds a registry entry by stating and hashing the sealed
// file at absPath, recorded under relPath.
func EntryFromFile(relPath, absPath string) (Entry, error) {
	info, err := os.Stat(absPath)
	if err != nil {
		return Entry{}, err
	}

	content, err := os.ReadFile(absPath)
	if err != nil {
		return Entry{}, err
	}
	hash := sha256.Sum256(content)

	return Entry{
		Path:    relPath,
		Size:    info.Size(),
		ModTime: info.ModTime(),
		Hash:    hex.EncodeToString(hash[:]),
	}, nil
}

// HashFile returns the hex SHA-256 of a file's current content
func HashFile(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:]), nil
}
