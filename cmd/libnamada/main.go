// Command libnamada builds the wallet bridge as a C shared library for
// mobile hosts:
//
//	go build -buildmode=c-shared -o libnamada.so ./cmd/libnamada
//
// Every exported function returns a heap string the host must hand back
// to free_string exactly once.
package main

/*
#include <stdlib.h>
*/
import "C"

import (
	"unsafe"

	"github.com/namada-mobile/namada-bridge/internal/bridge"
	"github.com/namada-mobile/namada-bridge/internal/wallet"
)

var (
	wb      = bridge.Default()
	handles = bridge.NewHandles()
)

// toHost copies text into a C string owned by the host.
func toHost(text string) *C.char {
	p := C.CString(bridge.HostText(text))
	handles.Track(uintptr(unsafe.Pointer(p)))
	return p
}

// fromHost borrows a host string. Null maps to nil.
func fromHost(p *C.char) *string {
	if p == nil {
		return nil
	}
	s := C.GoString(p)
	return &s
}

//export generate_seed_phrase
func generate_seed_phrase() *C.char {
	return toHost(bridge.GenerateSeedPhrase(wallet.Words12).Text)
}

//export generate_seed_phrase_24
func generate_seed_phrase_24() *C.char {
	return toHost(bridge.GenerateSeedPhrase(wallet.Words24).Text)
}

//export derive_and_save_wallet
func derive_and_save_wallet(input *C.char) *C.char {
	return toHost(wb.HandleRequest(fromHost(input)).Text)
}

//export configure_bridge
func configure_bridge(path *C.char) *C.char {
	p, err := bridge.DecodeInput(fromHost(path))
	if err != nil {
		return toHost(bridge.Failure(err).Text)
	}
	return toHost(wb.Configure(p).Text)
}

//export free_string
func free_string(s *C.char) {
	if handles.Release(uintptr(unsafe.Pointer(s))) {
		C.free(unsafe.Pointer(s))
	}
}

func main() {}
