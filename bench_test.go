package huffpack

import (
	"bytes"
	"testing"
)

func benchInputs() map[string][]byte {
	d := distributions()
	return map[string][]byte{
		"text":    bytes.Repeat(d["text"], 1024),
		"skewed":  d["skewed"],
		"uniform": d["uniform"],
	}
}

func BenchmarkEncode(b *testing.B) {
	for name, data := range benchInputs() {
		b.Run(name, func(b *testing.B) {
			var out []byte
			b.SetBytes(int64(len(data)))
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				var err error
				out, err = Encode(data)
				if err != nil {
					b.Fatal(err)
				}
			}
			b.ReportMetric(float64(len(data))/float64(len(out)), "ratio")
		})
	}
}

func BenchmarkDecode(b *testing.B) {
	for name, data := range benchInputs() {
		b.Run(name, func(b *testing.B) {
			packed, err := Encode(data)
			if err != nil {
				b.Fatal(err)
			}
			b.SetBytes(int64(len(data)))
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := Decode(packed); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkEncodeCachedModel(b *testing.B) {
	codec, err := NewCodec(WithModelCache(8))
	if err != nil {
		b.Fatal(err)
	}
	data := benchInputs()["text"]
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := codec.Encode(data); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkBuildTree(b *testing.B) {
	ft, err := Analyze(distributions()["all-bytes"])
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := BuildTree(ft); err != nil {
			b.Fatal(err)
		}
	}
}
