package resp

import "strconv"

// Command is an immutable outgoing RESP command: an opcode (one or more
// words — multi-word opcodes such as "CLIENT SETNAME" are pre-split here,
// never re-split by the encoder) and an ordered sequence of binary argument
// blobs. Commands are never mutated once built; callers that need to reuse
// a buffer must copy it before constructing a Command from it.
type Command struct {
	Name []string
	Args [][]byte
}

// NewCommand builds a single-word command from raw argument blobs.
func NewCommand(name string, args ...[]byte) Command {
	return Command{Name: []string{name}, Args: args}
}

// NewCommandWords builds a command whose opcode spans multiple words, e.g.
// NewCommandWords([]string{"CLIENT", "SETNAME"}, []byte("conn-1")).
func NewCommandWords(name []string, args ...[]byte) Command {
	return Command{Name: name, Args: args}
}

// AppendCommand encodes cmd onto buf using the RESP array form: "*<N>\r\n"
// followed by one "$<len>\r\n<bytes>\r\n" per opcode word and argument, N
// being the total element count. The opcode is sent as ASCII text; argument
// bytes are copied verbatim, never re-encoded.
func AppendCommand(buf []byte, cmd Command) []byte {
	n := len(cmd.Name) + len(cmd.Args)
	buf = append(buf, '*')
	buf = strconv.AppendInt(buf, int64(n), 10)
	buf = append(buf, '\r', '\n')

	for _, word := range cmd.Name {
		buf = appendBulk(buf, []byte(word))
	}
	for _, arg := range cmd.Args {
		buf = appendBulk(buf, arg)
	}
	return buf
}

func appendBulk(buf, data []byte) []byte {
	buf = append(buf, '$')
	buf = strconv.AppendInt(buf, int64(len(data)), 10)
	buf = append(buf, '\r', '\n')
	buf = append(buf, data...)
	buf = append(buf, '\r', '\n')
	return buf
}

// String renders the command the way it would appear on the wire, quoting
// each word/argument — used for error messages and test failure output,
// never for anything performance sensitive.
func (c Command) String() string {
	out := "["
	for i, w := range c.Name {
		if i > 0 {
			out += " "
		}
		out += strconv.Quote(w)
	}
	for _, a := range c.Args {
		out += " " + strconv.Quote(string(a))
	}
	return out + "]"
}
