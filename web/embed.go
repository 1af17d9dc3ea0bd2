// Package web carries the page shell and static assets compiled into the
// binary.
package web

import (
	"embed"
	"io/fs"
)

//go:embed index.html
var index []byte

//go:embed static
var static embed.FS

// Index returns a copy of the default page shell.
func Index() []byte {
	return append([]byte(nil), index...)
}

// Static is the asset tree served under /static/.
func Static() fs.FS {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		panic("web: static assets missing: " + err.Error())
	}
	return sub
}
