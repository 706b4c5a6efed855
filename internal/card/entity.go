package card

import "github.com/rileyhilliard/bleconsole/internal/display"

// Entity is one scanned device as resolved by the scan and cache layers.
// Empty strings mean the field is unknown and its block is skipped.
type Entity struct {
	Address    string
	RSSI       string
	OUI        string
	Appearance string
	Name       string
	Vendor     string

	HasServices bool
	Known       bool // already in storage

	TextColor   display.Color
	BorderColor display.Color
}

// Vendors with a dedicated icon, matched exactly.
const (
	VendorApple     = "Apple, Inc."
	VendorIBM       = "IBM Corp."
	VendorMicrosoft = "Microsoft"
)

// VendorIcon picks the icon for a vendor name and the x position it is drawn
// at. ok is false for an empty vendor.
func VendorIcon(vendor string) (icon display.Icon, x int, ok bool) {
	switch vendor {
	case "":
		return 0, 0, false
	case VendorApple:
		return display.IconApple, 12, true
	case VendorIBM:
		return display.IconIBM, 10, true
	case VendorMicrosoft:
		return display.IconMicrosoft, 12, true
	default:
		return display.IconGeneric, 12, true
	}
}
