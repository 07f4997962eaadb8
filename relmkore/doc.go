// Package relmkore implements the core model of relmk for the representation
// of release pipelines. It uses idiomatic Go error handling, which can make
// writing pipeline definitions a bit cumbersome. However, this package serves
// as a solid foundation for implementing run strategies over named tasks. The
// core concepts are [Pipeline], [Task] and [Operation]. An easy-to-use wrapper
// for everyday use in pipeline definitions is provided by the [relmk] package.
//
// [relmk]: https://pkg.go.dev/github.com/wikidot-tools/relmk
package relmkore
