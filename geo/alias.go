package geo

import "rental-radar/models"

// Fallback is one entry of a region's secondary substring-match chain,
// scanned in declaration order when the alias table has no exact hit.
type Fallback struct {
	Substring string
	Coord     models.Coordinate
}

// Region is a fixed, read-only alias table from normalized neighborhood
// keys to reference coordinates, plus the fallback chain and the default
// coordinate returned when nothing matches. Loaded once, process-wide.
type Region struct {
	ID        string
	Name      string
	Aliases   map[string]models.Coordinate
	Fallbacks []Fallback
	Default   models.Coordinate

	// GenericNames are city-level labels that carry no neighborhood
	// information; listings tagged with one are candidates for
	// reverse geocoding when they carry coordinates.
	GenericNames []string
}

// SF covers San Francisco proper.
var SF = &Region{
	ID:   "sf",
	Name: "San Francisco",
	Aliases: map[string]models.Coordinate{
		"mission":            {Lat: 37.7599, Lon: -122.4148},
		"soma":               {Lat: 37.7785, Lon: -122.4056},
		"south-beach":        {Lat: 37.7813, Lon: -122.3892},
		"nob-hill":           {Lat: 37.7930, Lon: -122.4161},
		"north-beach":        {Lat: 37.8061, Lon: -122.4103},
		"marina":             {Lat: 37.8037, Lon: -122.4368},
		"pacific-heights":    {Lat: 37.7925, Lon: -122.4382},
		"castro":             {Lat: 37.7609, Lon: -122.4350},
		"noe-valley":         {Lat: 37.7502, Lon: -122.4337},
		"haight-ashbury":     {Lat: 37.7692, Lon: -122.4481},
		"lower-haight":       {Lat: 37.7720, Lon: -122.4300},
		"western-addition":   {Lat: 37.7804, Lon: -122.4339},
		"hayes-valley":       {Lat: 37.7759, Lon: -122.4245},
		"sunset":             {Lat: 37.7431, Lon: -122.4660},
		"inner-sunset":       {Lat: 37.7601, Lon: -122.4689},
		"richmond":           {Lat: 37.7775, Lon: -122.4830},
		"outer-richmond":     {Lat: 37.7783, Lon: -122.4946},
		"potrero-hill":       {Lat: 37.7583, Lon: -122.4006},
		"dogpatch":           {Lat: 37.7576, Lon: -122.3884},
		"bernal-heights":     {Lat: 37.7399, Lon: -122.4166},
		"financial-district": {Lat: 37.7946, Lon: -122.3999},
		"tenderloin":         {Lat: 37.7847, Lon: -122.4145},
		"chinatown":          {Lat: 37.7941, Lon: -122.4078},
		"russian-hill":       {Lat: 37.8014, Lon: -122.4182},
		"west-portal":        {Lat: 37.7405, Lon: -122.4663},
		"bayview":            {Lat: 37.7299, Lon: -122.3865},
		"presidio":           {Lat: 37.7989, Lon: -122.4662},
		"parkmerced":         {Lat: 37.7183, Lon: -122.4769},
		"ingleside":          {Lat: 37.7239, Lon: -122.4539},
		"visitacion-valley":  {Lat: 37.7127, Lon: -122.4043},
		"treasure-island":    {Lat: 37.8235, Lon: -122.3708},
		"mission-bay":        {Lat: 37.7706, Lon: -122.3920},
	},
	Fallbacks: []Fallback{
		{"mission", models.Coordinate{Lat: 37.7599, Lon: -122.4148}},
		{"soma", models.Coordinate{Lat: 37.7785, Lon: -122.4056}},
		{"sunset", models.Coordinate{Lat: 37.7431, Lon: -122.4660}},
		{"richmond", models.Coordinate{Lat: 37.7775, Lon: -122.4830}},
		{"marina", models.Coordinate{Lat: 37.8037, Lon: -122.4368}},
		{"castro", models.Coordinate{Lat: 37.7609, Lon: -122.4350}},
		{"haight", models.Coordinate{Lat: 37.7692, Lon: -122.4481}},
		{"nob", models.Coordinate{Lat: 37.7930, Lon: -122.4161}},
		{"downtown", models.Coordinate{Lat: 37.7946, Lon: -122.3999}},
		{"potrero", models.Coordinate{Lat: 37.7583, Lon: -122.4006}},
	},
	Default:      models.Coordinate{Lat: 37.7749, Lon: -122.4194},
	GenericNames: []string{"san francisco", "sf", "unknown"},
}

// Stanford covers the peninsula towns around Stanford.
var Stanford = &Region{
	ID:   "stanford",
	Name: "Stanford Area",
	Aliases: map[string]models.Coordinate{
		"stanford":       {Lat: 37.4275, Lon: -122.1697},
		"palo-alto":      {Lat: 37.4419, Lon: -122.1430},
		"east-palo-alto": {Lat: 37.4688, Lon: -122.1411},
		"menlo-park":     {Lat: 37.4530, Lon: -122.1817},
		"redwood-city":   {Lat: 37.4852, Lon: -122.2364},
		"mountain-view":  {Lat: 37.3861, Lon: -122.0839},
		"sunnyvale":      {Lat: 37.3688, Lon: -122.0363},
		"los-altos":      {Lat: 37.3852, Lon: -122.1141},
		"atherton":       {Lat: 37.4613, Lon: -122.1977},
		"woodside":       {Lat: 37.4299, Lon: -122.2539},
		"san-carlos":     {Lat: 37.5072, Lon: -122.2605},
		"belmont":        {Lat: 37.5202, Lon: -122.2758},
	},
	Fallbacks: []Fallback{
		{"palo-alto", models.Coordinate{Lat: 37.4419, Lon: -122.1430}},
		{"menlo", models.Coordinate{Lat: 37.4530, Lon: -122.1817}},
		{"redwood", models.Coordinate{Lat: 37.4852, Lon: -122.2364}},
		{"mountain-view", models.Coordinate{Lat: 37.3861, Lon: -122.0839}},
		{"stanford", models.Coordinate{Lat: 37.4275, Lon: -122.1697}},
		{"sunnyvale", models.Coordinate{Lat: 37.3688, Lon: -122.0363}},
	},
	Default:      models.Coordinate{Lat: 37.4275, Lon: -122.1697},
	GenericNames: []string{"stanford area", "peninsula", "unknown"},
}
