package logging

// Common field constructors
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

// Field helpers for the provisioning domain
func Role(role string) Field {
	return String("role", role)
}

func Mode(mode string) Field {
	return String("mode", mode)
}

func Step(description string) Field {
	return String("step", description)
}

func RunID(id string) Field {
	return String("run_id", id)
}

func NodeID(id int) Field {
	return Int("node_id", id)
}

func Path(p string) Field {
	return String("path", p)
}
