// Package repository is the data access layer.
//
// Repositories hold the rules that must hold whatever store is configured
// and hide the store's identifier format from the layers above.
package repository
