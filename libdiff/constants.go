package libdiff

// Op tags the kind of a diff entry.  The six tags and their argument
// shapes are the wire contract: [op, key, ...args] tuples.
type Op string

const (
	OpAdd       Op = "ADD"       // [ADD, key, value]
	OpRemove    Op = "REMOVE"    // [REMOVE, key]
	OpReplace   Op = "REPLACE"   // [REPLACE, key, value]
	OpPatch     Op = "PATCH"     // [PATCH, key-or-index, diff]
	OpSeqInsert Op = "SEQINSERT" // [SEQINSERT, index, values]
	OpSeqDelete Op = "SEQDELETE" // [SEQDELETE, index, count]
)
