package ai

// EntityTypes is the closed set of types the extractor may assign to an
// entity. Keeping the set small makes extraction output stable across runs.
var EntityTypes = []string{
	"person",
	"organization",
	"place",
	"event",
	"product",
	"technology",
	"document",
	"concept",
}
