package main

import (
	rb "github.com/rmcsoft/renderbench"
)

// nullDisplay pairs the null backend with a window handle that exists
// only by name.
type nullDisplay struct {
	backend rb.Backend
	width   int
	height  int
}

func newNullDisplay(width, height int) *nullDisplay {
	return &nullDisplay{backend: rb.NullBackend(), width: width, height: height}
}

func (d *nullDisplay) Backend() rb.Backend { return d.backend }
func (d *nullDisplay) Window() rb.Drawable { return 1 }
func (d *nullDisplay) Visual() rb.Visual   { return 0 }
func (d *nullDisplay) Size() (int, int)    { return d.width, d.height }
func (d *nullDisplay) Close() error        { return d.backend.Close() }
