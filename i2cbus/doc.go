// Package i2cbus provides display.Bus implementations that write single
// device registers: one on top of a periph.io I²C bus and one on top of
// github.com/d2r2/go-i2c.
package i2cbus
