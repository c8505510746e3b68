// Package imaging provides the image I/O collaborators of the descriptor
// pipeline: decoding with a thread-safe cache, resizing, and input directory
// listing. The descriptor core never touches the filesystem; everything
// file-shaped lives here.
package imaging
