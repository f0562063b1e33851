package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from key. Callers prefix keys by kind so
// a route and a source with the same text never share an ID.
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceURL, []byte(trimmed))
	}
	return uid
}

// RouteUUID identifies a route by its URL path.
func RouteUUID(path string) uuid.UUID {
	return UUID("docsite:route:" + path)
}

// SourceUUID identifies a document by its path inside the content root.
func SourceUUID(sourcePath string) uuid.UUID {
	return UUID("docsite:source:" + sourcePath)
}
