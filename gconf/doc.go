/*
Package gconf implements a configuration store intended to be used as a global,
in-database configuration.

Each extension owns a single configuration entity stored under the "_c:"
prefix followed by the extension name. A configuration is loaded from the
genesis file and can later be updated only by its owner.
*/
package gconf
