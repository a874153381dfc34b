package async

// Wrap3 turns fn(a, b, c, cb) into a function returning a future. Arguments
// are forwarded unchanged and exactly one callback is appended. Passing a
// method value keeps its receiver bound.
func Wrap3[A, B, C, T any](fn func(A, B, C, Callback[T])) func(A, B, C) *Future[T] {
	return func(a A, b B, c C) *Future[T] {
		return Call(func(cb Callback[T]) {
			fn(a, b, c, cb)
		})
	}
}
