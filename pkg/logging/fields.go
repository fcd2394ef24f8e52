package logging

import "time"

// Common field constructors
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Float64(key string, value float64) Field {
	return Field{Key: key, Value: value}
}

func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

func Any(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Field helpers for the analysis pipeline

func Component(name string) Field {
	return String("component", name)
}

func BuildID(id string) Field {
	return String("build_id", id)
}

func NodeCount(n int) Field {
	return Int("nodes", n)
}

func EdgeCount(n int) Field {
	return Int("edges", n)
}

func LoopCount(n int) Field {
	return Int("loops", n)
}

func SkippedCount(n int) Field {
	return Int("skipped", n)
}

func Elapsed(d time.Duration) Field {
	return Duration("elapsed", d)
}

func Path(p string) Field {
	return String("path", p)
}
