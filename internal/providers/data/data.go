// Package data embeds the route schedules served by the fixture providers.
package data

import _ "embed"

//go:embed skyline.json
var SkylineData []byte

//go:embed aerofare.json
var AeroFareData []byte
