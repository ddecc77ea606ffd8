package nbdiff

import "errors"

// ErrStructure reports a malformed input document or cell record.  Errors
// wrapping it name the offending side ("from" or "to") and cell index.
var ErrStructure = errors.New("malformed notebook structure")
