package api

import (
	"sync"

	"github.com/google/uuid"
)

type blobKey struct {
	account string
	blob    string
}

// BlobStore holds uploaded script blobs per account. Blobs are opaque bytes;
// validation happens when the client asks for it, not at upload.
type BlobStore struct {
	mu    sync.Mutex
	blobs map[blobKey][]byte
}

func NewBlobStore() *BlobStore {
	return &BlobStore{
		blobs: make(map[blobKey][]byte),
	}
}

// Put stores data under a fresh blob id scoped to accountID.
func (s *BlobStore) Put(accountID string, data []byte) string {
	blobID := newBlobID()
	s.mu.Lock()
	s.blobs[blobKey{account: accountID, blob: blobID}] = data
	s.mu.Unlock()
	return blobID
}

// Get returns the blob stored for the account, if any.
func (s *BlobStore) Get(accountID, blobID string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.blobs[blobKey{account: accountID, blob: blobID}]
	return data, ok
}

// Delete removes a blob. It reports whether the blob existed.
func (s *BlobStore) Delete(accountID, blobID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := blobKey{account: accountID, blob: blobID}
	if _, ok := s.blobs[key]; !ok {
		return false
	}
	delete(s.blobs, key)
	return true
}

func newBlobID() string {
	return "blob_" + uuid.NewString()
}
