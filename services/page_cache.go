package services

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// PageInvalidator is the side-effect hook the interaction and comment
// services use to refresh the cached view of a post's page.
type PageInvalidator interface {
	Invalidate(postID uuid.UUID)
}

type cacheEntry struct {
	payload   []byte
	expiresAt time.Time
}

// PostPageCache caches rendered post pages in process, keyed by post id.
// Writes to a post (likes, views, saves, comments, edits) invalidate its
// entry so counts are fresh on the next read.
type PostPageCache struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]cacheEntry
	ttl     time.Duration
}

func NewPostPageCache(ttl time.Duration) *PostPageCache {
	return &PostPageCache{
		entries: make(map[uuid.UUID]cacheEntry),
		ttl:     ttl,
	}
}

// Get returns the cached payload for a post, or nil when absent or expired.
func (c *PostPageCache) Get(postID uuid.UUID) []byte {
	c.mu.RLock()
	entry, ok := c.entries[postID]
	c.mu.RUnlock()
	if !ok || time.Now().After(entry.expiresAt) {
		return nil
	}
	return entry.payload
}

// Set stores the rendered payload for a post.
func (c *PostPageCache) Set(postID uuid.UUID, payload []byte) {
	c.mu.Lock()
	c.entries[postID] = cacheEntry{payload: payload, expiresAt: time.Now().Add(c.ttl)}
	c.mu.Unlock()
}

// Invalidate drops the cached payload for a post.
func (c *PostPageCache) Invalidate(postID uuid.UUID) {
	c.mu.Lock()
	delete(c.entries, postID)
	c.mu.Unlock()
}
