//go:build !soundgraph

package inspect

func soundGraphAdapters() []Adapter {
	return nil
}
