package levels

import (
	"embed"
	"fmt"
	"strings"
)

//go:embed *.json
var levelsFS embed.FS

// Load returns a level file's contents by basename; the .json extension is
// optional.
func Load(name string) ([]byte, error) {
	if !strings.HasSuffix(name, ".json") {
		name += ".json"
	}
	data, err := levelsFS.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", name, err)
	}
	return data, nil
}

// Default is the level loaded when none is named.
const Default = "meadow"
