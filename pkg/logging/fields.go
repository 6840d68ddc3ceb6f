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

// Domain field helpers

func Airport(icao string) Field {
	return String("airport", icao)
}

func NodeID(id string) Field {
	return String("node_id", id)
}

func EdgeRef(fromID, toID string) Field {
	return String("edge", fromID+" -> "+toID)
}

func Component(name string) Field {
	return String("component", name)
}

func Latency(d time.Duration) Field {
	return Duration("latency", d)
}
