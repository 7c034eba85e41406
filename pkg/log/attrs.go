package log

import "log/slog"

func Sprite[T ~string](name T) slog.Attr {
	return slog.String("sprite", string(name))
}

func Chain[T ~string](id T) slog.Attr {
	return slog.String("chain", string(id))
}

func Block[T ~string](id T) slog.Attr {
	return slog.String("block", string(id))
}

func Opcode[T ~string](op T) slog.Attr {
	return slog.String("opcode", string(op))
}

func RunID[T ~string](id T) slog.Attr {
	return slog.String("run_id", string(id))
}

func Broadcast[T ~string](name T) slog.Attr {
	return slog.String("broadcast", string(name))
}

func Sound[T ~string](name T) slog.Attr {
	return slog.String("sound", string(name))
}

func Frame(n uint64) slog.Attr {
	return slog.Uint64("frame", n)
}

func Error(err error) slog.Attr {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return slog.String("error", msg)
}

func ErrorString(msg string) slog.Attr {
	return slog.String("error", msg)
}
