package model

// FileMeta describes one source document. The core only uses the first four
// fields; the rest come along from the PDF metadata tool and are preserved
// for round-tripping.
type FileMeta struct {
	FileID      string `json:"file_id"`
	Name        string `json:"name"`
	URL         string `json:"url,omitempty"`
	Description string `json:"description,omitempty"`

	Path      string `json:"path,omitempty"`
	Size      int64  `json:"size,omitempty"`
	Hash      string `json:"hash,omitempty"`
	Pages     *int   `json:"pages,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
	Type      string `json:"type,omitempty"`
	JSONFile  string `json:"json_file,omitempty"`
}
