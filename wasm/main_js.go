//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/voxelsplace/voxdestruct/api"
	"github.com/voxelsplace/voxdestruct/scene"
)

func bytesArg(v js.Value) []byte {
	buf := make([]byte, v.Get("length").Int())
	js.CopyBytesToGo(buf, v)
	return buf
}

func toUint8Array(b []byte) js.Value {
	arr := js.Global().Get("Uint8Array").New(len(b))
	js.CopyBytesToJS(arr, b)
	return arr
}

func vox2glb(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf("missing vox bytes")
	}
	size := float32(1)
	if len(args) > 1 {
		size = float32(args[1].Float())
	}
	out, err := api.VOXToGLB(bytesArg(args[0]), size)
	if err != nil {
		return js.ValueOf(err.Error())
	}
	return toUint8Array(out)
}

// destroyVox(voxBytes, requestsJSON, configJSON?) -> glb bytes
func destroyVox(this js.Value, args []js.Value) any {
	if len(args) < 2 {
		return js.ValueOf("missing vox bytes or requests")
	}
	reqs, err := scene.ParseRequests([]byte(args[1].String()))
	if err != nil {
		return js.ValueOf(err.Error())
	}
	cfg := scene.DefaultConfig()
	if len(args) > 2 && args[2].Type() == js.TypeString {
		if cfg, err = scene.ParseConfig([]byte(args[2].String())); err != nil {
			return js.ValueOf(err.Error())
		}
	}
	w, err := api.Destroy(bytesArg(args[0]), reqs, cfg, nil)
	if err != nil {
		return js.ValueOf(err.Error())
	}
	out, err := api.WorldToGLB(w)
	if err != nil {
		return js.ValueOf(err.Error())
	}
	return toUint8Array(out)
}

func voxpack2glb(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf("missing pack bytes")
	}
	out, err := api.PackToGLB(bytesArg(args[0]), 1)
	if err != nil {
		return js.ValueOf(err.Error())
	}
	return toUint8Array(out)
}

func main() {
	js.Global().Set("vox2glb", js.FuncOf(vox2glb))
	js.Global().Set("destroyVox", js.FuncOf(destroyVox))
	js.Global().Set("voxpack2glb", js.FuncOf(voxpack2glb))
	select {}
}
