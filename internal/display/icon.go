package display

// Icon identifies one of the bitmap assets shipped with the firmware. The
// pixel data lives with the panel driver; the console only places icons.
type Icon int

const (
	IconUpdate  Icon = iota // device already stored
	IconInsert              // device just stored
	IconService             // advertises service UUIDs
	IconNIC                 // OUI resolved
	IconName                // has a local name
	IconApple
	IconIBM
	IconMicrosoft
	IconGeneric
	IconLogo
)

var iconNames = [...]string{
	IconUpdate:    "update",
	IconInsert:    "insert",
	IconService:   "service",
	IconNIC:       "nic",
	IconName:      "name",
	IconApple:     "apple",
	IconIBM:       "ibm",
	IconMicrosoft: "microsoft",
	IconGeneric:   "generic",
	IconLogo:      "logo",
}

var iconSizes = [...][2]int{
	IconUpdate:    {8, 8},
	IconInsert:    {8, 8},
	IconService:   {8, 8},
	IconNIC:       {13, 8},
	IconName:      {7, 8},
	IconApple:     {8, 8},
	IconIBM:       {20, 8},
	IconMicrosoft: {8, 8},
	IconGeneric:   {8, 8},
	IconLogo:      {28, 28},
}

// placeholder tints used by the framebuffer in place of real bitmaps
var iconTints = [...]Color{
	IconUpdate:    InCache,
	IconInsert:    NotInCache,
	IconService:   Cyan,
	IconNIC:       LightGrey,
	IconName:      White,
	IconApple:     LightGrey,
	IconIBM:       Blue,
	IconMicrosoft: Orange,
	IconGeneric:   DarkGrey,
	IconLogo:      Yellow,
}

// String returns the asset name.
func (i Icon) String() string {
	if i < 0 || int(i) >= len(iconNames) {
		return "unknown"
	}
	return iconNames[i]
}

// Size returns the icon's width and height in pixels.
func (i Icon) Size() (w, h int) {
	if i < 0 || int(i) >= len(iconSizes) {
		return 0, 0
	}
	return iconSizes[i][0], iconSizes[i][1]
}

// Tint returns the flat color the framebuffer paints for the icon.
func (i Icon) Tint() Color {
	if i < 0 || int(i) >= len(iconTints) {
		return Magenta
	}
	return iconTints[i]
}
