package routeset

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// idNamespace scopes route ids so they never collide with other SHA-1 UUIDs.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/sternensim/StarNavigation/routes"))

type keyMaterial struct {
	Request
	Catalog string `json:"catalog"`
}

// CacheKey fingerprints a normalized request together with the catalog it
// will be evaluated against.
func CacheKey(req Request, catalogID string) (string, error) {
	b, err := json.Marshal(keyMaterial{Request: req, Catalog: catalogID})
	if err != nil {
		return "", fmt.Errorf("encode cache key: %w", err)
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}

// routeID is stable for a given request fingerprint and strategy.
func routeID(key, strategy string) string {
	return uuid.NewSHA1(idNamespace, []byte(key+"/"+strategy)).String()
}
