package dimage

import (
	"encoding/binary"
	"sync/atomic"

	"github.com/janelia-flyem/downsample/dvid"

	"github.com/coocood/freecache"
)

var (
	chunkCache *freecache.Cache
	readerIDs  uint64

	cacheAttempts uint64
	cacheHits     uint64
)

// SetChunkCache sets the size in bytes of the cache for uncompressed chunks shared
// by all readers.  Chunks larger than 1/1024 of the cache are never cached.  A size
// of zero disables caching.
func SetChunkCache(numBytes int) {
	if numBytes <= 0 {
		chunkCache = nil
		return
	}
	chunkCache = freecache.NewCache(numBytes)
	dvid.Infof("Created freecache of ~ %d MB for image chunks.\n", numBytes>>20)
}

// CacheHitRate returns the fraction of chunk reads served from the cache.
func CacheHitRate() float64 {
	attempts := atomic.LoadUint64(&cacheAttempts)
	if attempts == 0 {
		return 0
	}
	return float64(atomic.LoadUint64(&cacheHits)) / float64(attempts)
}

// chunkKey is a two tuple (reader id, chunk)
type chunkKey struct {
	reader uint64
	chunk  int
}

func (k chunkKey) Bytes() []byte {
	b := make([]byte, 16)
	binary.LittleEndian.PutUint64(b[0:8], k.reader)
	binary.LittleEndian.PutUint64(b[8:16], uint64(k.chunk))
	return b
}

func getCachedChunk(k chunkKey) []byte {
	if chunkCache == nil {
		return nil
	}
	atomic.AddUint64(&cacheAttempts, 1)
	data, err := chunkCache.Get(k.Bytes())
	if err != nil {
		if err != freecache.ErrNotFound {
			dvid.Errorf("chunk cache read: %v\n", err)
		}
		return nil
	}
	atomic.AddUint64(&cacheHits, 1)
	return data
}

func putCachedChunk(k chunkKey, data []byte) {
	if chunkCache == nil {
		return
	}
	if err := chunkCache.Set(k.Bytes(), data, 0); err != nil && err != freecache.ErrLargeEntry {
		dvid.Errorf("chunk cache write: %v\n", err)
	}
}
