// Package app builds the sync components from a loaded config.
//
// Both binaries share it: woosync runs the poller with every configured
// sink, wooctl only needs the client and the cursor store.
package app
