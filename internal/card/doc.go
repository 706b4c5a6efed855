// Package card renders discovered BLE devices as bordered cards in the
// scrolling band.
//
// A card is a run of printed lines: a spacer, the address and RSSI line,
// optional OUI, appearance, name and vendor blocks each behind a spacer, and a
// trailing spacer. Icons are placed on the row a line landed on, and the
// border is drawn last from the accumulated height. When the card straddles
// the hardware scroll wrap point the border is split in two; see Border.
package card
