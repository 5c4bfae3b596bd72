package menu

import (
	_ "embed"
	"encoding/json"

	"github.com/Amresh-01/Canteeno/internal/domain"
)

//go:embed fallback_menu.json
var fallbackJSON []byte

// Fallback returns the bundled catalog used until a remote fetch succeeds.
func Fallback() []domain.MenuItem {
	var items []domain.MenuItem
	if err := json.Unmarshal(fallbackJSON, &items); err != nil {
		// The bundled file ships with the binary; a decode failure is a build defect.
		panic("menu: bundled fallback catalog is invalid: " + err.Error())
	}
	return items
}
