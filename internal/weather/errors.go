package weather

import "errors"

// ErrLocationNotFound is the only pipeline failure surfaced to the user on
// the text-search path: the provider rejected the query and no gazetteer
// fallback applies. Everything else is absorbed by synthetic generation.
var ErrLocationNotFound = errors.New("location not found; try another search")
