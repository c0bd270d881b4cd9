package redis

import "github.com/xenking/respdrive/internal/resp"

// cmdSpec is a table entry describing one opcode's shape: its wire name
// (possibly multi-word, e.g. CLIENT SETNAME) and its arity. Arity -1 means
// "any number of arguments, including zero". The arity is recorded in the
// table only; buildCmd and buildCmdBytes do not check argument counts
// against it.
type cmdSpec struct {
	opcode []string
	arity  int
}

var (
	specGet          = cmdSpec{[]string{"GET"}, 1}
	specSet          = cmdSpec{[]string{"SET"}, -1}
	specSetEx        = cmdSpec{[]string{"SETEX"}, 3}
	specIncr         = cmdSpec{[]string{"INCR"}, 1}
	specIncrBy       = cmdSpec{[]string{"INCRBY"}, 2}
	specAppend       = cmdSpec{[]string{"APPEND"}, 2}
	specStrlen       = cmdSpec{[]string{"STRLEN"}, 1}
	specGetSet       = cmdSpec{[]string{"GETSET"}, 2}
	specDel          = cmdSpec{[]string{"DEL"}, -1}
	specExists       = cmdSpec{[]string{"EXISTS"}, -1}
	specExpire       = cmdSpec{[]string{"EXPIRE"}, 2}
	specTTL          = cmdSpec{[]string{"TTL"}, 1}
	specType         = cmdSpec{[]string{"TYPE"}, 1}
	specRename       = cmdSpec{[]string{"RENAME"}, 2}
	specScan         = cmdSpec{[]string{"SCAN"}, -1}
	specKeys         = cmdSpec{[]string{"KEYS"}, 1}
	specRandomKey    = cmdSpec{[]string{"RANDOMKEY"}, 0}
	specHGet         = cmdSpec{[]string{"HGET"}, 2}
	specHSet         = cmdSpec{[]string{"HSET"}, -1}
	specHGetAll      = cmdSpec{[]string{"HGETALL"}, 1}
	specHDel         = cmdSpec{[]string{"HDEL"}, -1}
	specHScan        = cmdSpec{[]string{"HSCAN"}, -1}
	specLPush        = cmdSpec{[]string{"LPUSH"}, -1}
	specRPush        = cmdSpec{[]string{"RPUSH"}, -1}
	specLRange       = cmdSpec{[]string{"LRANGE"}, 3}
	specLPop         = cmdSpec{[]string{"LPOP"}, -1}
	specSAdd         = cmdSpec{[]string{"SADD"}, -1}
	specSMembers     = cmdSpec{[]string{"SMEMBERS"}, 1}
	specSIsMember    = cmdSpec{[]string{"SISMEMBER"}, 2}
	specSScan        = cmdSpec{[]string{"SSCAN"}, -1}
	specZAdd         = cmdSpec{[]string{"ZADD"}, -1}
	specZScore       = cmdSpec{[]string{"ZSCORE"}, 2}
	specZRange       = cmdSpec{[]string{"ZRANGE"}, -1}
	specZScan        = cmdSpec{[]string{"ZSCAN"}, -1}
	specGeoAdd       = cmdSpec{[]string{"GEOADD"}, -1}
	specGeoPos       = cmdSpec{[]string{"GEOPOS"}, -1}
	specGeoDist      = cmdSpec{[]string{"GEODIST"}, -1}
	specPing         = cmdSpec{[]string{"PING"}, -1}
	specEcho         = cmdSpec{[]string{"ECHO"}, 1}
	specClientName   = cmdSpec{[]string{"CLIENT", "SETNAME"}, 1}
	specObjectEncode = cmdSpec{[]string{"OBJECT", "ENCODING"}, 1}
	specQuit         = cmdSpec{[]string{"QUIT"}, 0}
	specSort         = cmdSpec{[]string{"SORT"}, -1}
	specWait         = cmdSpec{[]string{"WAIT"}, 2}
)

// buildCmd assembles a Command from a table entry and string arguments,
// encoding each as UTF-8 bytes — the shape every command builder in
// commands.go funnels through.
func buildCmd(spec cmdSpec, args ...string) resp.Command {
	blobs := make([][]byte, len(args))
	for i, a := range args {
		blobs[i] = []byte(a)
	}
	return resp.NewCommandWords(spec.opcode, blobs...)
}

// buildCmdBytes is buildCmd's counterpart for binary-safe arguments (hash
// field values, SET payloads, ...).
func buildCmdBytes(spec cmdSpec, args ...[]byte) resp.Command {
	return resp.NewCommandWords(spec.opcode, args...)
}
