package ffi

// Built-in buffer management functions, one set per FFI namespace.

func BufferAlloc(ns string) Function {
	return Function{
		Name:       "ffi_" + ns + "_rustbuffer_alloc",
		Arguments:  []Argument{{Name: "size", Type: Int32}},
		ReturnType: Ptr(Buffer),
	}
}

func BufferFromBytes(ns string) Function {
	return Function{
		Name:       "ffi_" + ns + "_rustbuffer_from_bytes",
		Arguments:  []Argument{{Name: "bytes", Type: ForeignBytes}},
		ReturnType: Ptr(Buffer),
	}
}

func BufferFree(ns string) Function {
	return Function{
		Name:      "ffi_" + ns + "_rustbuffer_free",
		Arguments: []Argument{{Name: "buf", Type: Buffer}},
	}
}

func BufferReserve(ns string) Function {
	return Function{
		Name: "ffi_" + ns + "_rustbuffer_reserve",
		Arguments: []Argument{
			{Name: "buf", Type: Buffer},
			{Name: "additional", Type: Int32},
		},
		ReturnType: Ptr(Buffer),
	}
}

// BufferFunctions returns alloc, from_bytes, free and reserve in that order.
func BufferFunctions(ns string) []Function {
	return []Function{
		BufferAlloc(ns),
		BufferFromBytes(ns),
		BufferFree(ns),
		BufferReserve(ns),
	}
}
