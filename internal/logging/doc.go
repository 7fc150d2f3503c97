// Package logging sets up structured JSON logging for postsearch.
//
// Logs go to a size-rotated file, by default ~/.postsearch/logs/postsearch.log,
// because the interactive panel owns the terminal. One-shot commands may also
// mirror records to stderr. The file is read back by 'postsearch logs'.
package logging
