// Package circuits contains the gnark circuit definitions and shared
// in-circuit gadgets for the Degrees-of-Separation voucher system: the
// origin voucher circuit, the extension voucher circuit, and the builder
// facade that compiles and caches them.
package circuits
