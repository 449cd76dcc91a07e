package md2nb

// Document represents a parsed markdown document: the ordered block
// sequence plus metadata about the source file
type Document struct {
	// Metadata about the source file
	Metadata MetaData
	// The parsed blocks in document order
	Blocks []Block
}

type MetaData struct {
	// The source file path
	Source string
}
