package langdetect

import "testing"

func BenchmarkResolveAlias(b *testing.B) {
	for range b.N {
		Resolve("golang", nil)
	}
}

func BenchmarkResolveBody(b *testing.B) {
	body := []byte("def hello():\n    print(\"Hello, World!\")\n\nif __name__ == \"__main__\":\n    hello()")
	b.ResetTimer()
	for range b.N {
		Resolve("", body)
	}
}

func BenchmarkDetectEmpty(b *testing.B) {
	for range b.N {
		Detect(nil)
	}
}
