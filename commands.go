package redis

import "strconv"

// This file is the typed, discoverable surface over Conn.Do for the
// command subset documented in SPEC_FULL.md §4.6. Every method just builds
// a Command from commands_table.go and submits it; callers still choose
// how to parse the result via parse.go, since the same wire reply (e.g. an
// Integer) backs several different typed parsers (ParseInt vs ParseBool).

// Get submits GET key.
func (c *Conn) Get(key string) (Future, error) {
	return c.Do(buildCmd(specGet, key))
}

// Set submits SET key value [extra...], where extra carries modifiers such
// as "EX", "100", "NX" verbatim, matching how the wire protocol itself
// flattens SET's option grammar into trailing arguments.
func (c *Conn) Set(key, value string, extra ...string) (Future, error) {
	args := append([]string{key, value}, extra...)
	return c.Do(buildCmd(specSet, args...))
}

// SetBytes submits SET key value with a binary-safe payload, for values
// that are not valid UTF-8 text (e.g. serialized protobufs).
func (c *Conn) SetBytes(key string, value []byte) (Future, error) {
	return c.Do(buildCmdBytes(specSet, []byte(key), value))
}

// SetEx submits SETEX key seconds value.
func (c *Conn) SetEx(key string, seconds int64, value string) (Future, error) {
	return c.Do(buildCmd(specSetEx, key, strconv.FormatInt(seconds, 10), value))
}

// Incr submits INCR key.
func (c *Conn) Incr(key string) (Future, error) {
	return c.Do(buildCmd(specIncr, key))
}

// IncrBy submits INCRBY key delta.
func (c *Conn) IncrBy(key string, delta int64) (Future, error) {
	return c.Do(buildCmd(specIncrBy, key, strconv.FormatInt(delta, 10)))
}

// Append submits APPEND key value.
func (c *Conn) Append(key, value string) (Future, error) {
	return c.Do(buildCmd(specAppend, key, value))
}

// Strlen submits STRLEN key.
func (c *Conn) Strlen(key string) (Future, error) {
	return c.Do(buildCmd(specStrlen, key))
}

// GetSet submits GETSET key value.
func (c *Conn) GetSet(key, value string) (Future, error) {
	return c.Do(buildCmd(specGetSet, key, value))
}

// Del submits DEL key [key...].
func (c *Conn) Del(keys ...string) (Future, error) {
	return c.Do(buildCmd(specDel, keys...))
}

// Exists submits EXISTS key [key...].
func (c *Conn) Exists(keys ...string) (Future, error) {
	return c.Do(buildCmd(specExists, keys...))
}

// Expire submits EXPIRE key seconds.
func (c *Conn) Expire(key string, seconds int64) (Future, error) {
	return c.Do(buildCmd(specExpire, key, strconv.FormatInt(seconds, 10)))
}

// TTL submits TTL key.
func (c *Conn) TTL(key string) (Future, error) {
	return c.Do(buildCmd(specTTL, key))
}

// Type submits TYPE key.
func (c *Conn) Type(key string) (Future, error) {
	return c.Do(buildCmd(specType, key))
}

// Rename submits RENAME key newkey.
func (c *Conn) Rename(key, newKey string) (Future, error) {
	return c.Do(buildCmd(specRename, key, newKey))
}

// Scan submits SCAN cursor [extra...] (extra carries MATCH/COUNT/TYPE
// modifiers verbatim).
func (c *Conn) Scan(cursor string, extra ...string) (Future, error) {
	args := append([]string{cursor}, extra...)
	return c.Do(buildCmd(specScan, args...))
}

// Keys submits KEYS pattern.
func (c *Conn) Keys(pattern string) (Future, error) {
	return c.Do(buildCmd(specKeys, pattern))
}

// RandomKey submits RANDOMKEY.
func (c *Conn) RandomKey() (Future, error) {
	return c.Do(buildCmd(specRandomKey))
}

// HGet submits HGET key field.
func (c *Conn) HGet(key, field string) (Future, error) {
	return c.Do(buildCmd(specHGet, key, field))
}

// HSet submits HSET key field value [field value...].
func (c *Conn) HSet(key string, fieldValues ...string) (Future, error) {
	args := append([]string{key}, fieldValues...)
	return c.Do(buildCmd(specHSet, args...))
}

// HGetAll submits HGETALL key.
func (c *Conn) HGetAll(key string) (Future, error) {
	return c.Do(buildCmd(specHGetAll, key))
}

// HDel submits HDEL key field [field...].
func (c *Conn) HDel(key string, fields ...string) (Future, error) {
	args := append([]string{key}, fields...)
	return c.Do(buildCmd(specHDel, args...))
}

// HScan submits HSCAN key cursor [extra...].
func (c *Conn) HScan(key, cursor string, extra ...string) (Future, error) {
	args := append([]string{key, cursor}, extra...)
	return c.Do(buildCmd(specHScan, args...))
}

// LPush submits LPUSH key value [value...].
func (c *Conn) LPush(key string, values ...string) (Future, error) {
	args := append([]string{key}, values...)
	return c.Do(buildCmd(specLPush, args...))
}

// RPush submits RPUSH key value [value...].
func (c *Conn) RPush(key string, values ...string) (Future, error) {
	args := append([]string{key}, values...)
	return c.Do(buildCmd(specRPush, args...))
}

// LRange submits LRANGE key start stop.
func (c *Conn) LRange(key string, start, stop int64) (Future, error) {
	return c.Do(buildCmd(specLRange, key, strconv.FormatInt(start, 10), strconv.FormatInt(stop, 10)))
}

// LPop submits LPOP key [count].
func (c *Conn) LPop(key string, extra ...string) (Future, error) {
	args := append([]string{key}, extra...)
	return c.Do(buildCmd(specLPop, args...))
}

// SAdd submits SADD key member [member...].
func (c *Conn) SAdd(key string, members ...string) (Future, error) {
	args := append([]string{key}, members...)
	return c.Do(buildCmd(specSAdd, args...))
}

// SMembers submits SMEMBERS key.
func (c *Conn) SMembers(key string) (Future, error) {
	return c.Do(buildCmd(specSMembers, key))
}

// SIsMember submits SISMEMBER key member.
func (c *Conn) SIsMember(key, member string) (Future, error) {
	return c.Do(buildCmd(specSIsMember, key, member))
}

// SScan submits SSCAN key cursor [extra...].
func (c *Conn) SScan(key, cursor string, extra ...string) (Future, error) {
	args := append([]string{key, cursor}, extra...)
	return c.Do(buildCmd(specSScan, args...))
}

// ZAdd submits ZADD key [flags...] score member [score member...].
func (c *Conn) ZAdd(key string, scoreMembers ...string) (Future, error) {
	args := append([]string{key}, scoreMembers...)
	return c.Do(buildCmd(specZAdd, args...))
}

// ZScore submits ZSCORE key member.
func (c *Conn) ZScore(key, member string) (Future, error) {
	return c.Do(buildCmd(specZScore, key, member))
}

// ZRange submits ZRANGE key start stop [extra...].
func (c *Conn) ZRange(key string, start, stop int64, extra ...string) (Future, error) {
	args := append([]string{key, strconv.FormatInt(start, 10), strconv.FormatInt(stop, 10)}, extra...)
	return c.Do(buildCmd(specZRange, args...))
}

// ZScan submits ZSCAN key cursor [extra...].
func (c *Conn) ZScan(key, cursor string, extra ...string) (Future, error) {
	args := append([]string{key, cursor}, extra...)
	return c.Do(buildCmd(specZScan, args...))
}

// GeoAdd submits GEOADD key longitude latitude member [longitude latitude
// member...].
func (c *Conn) GeoAdd(key string, triples ...string) (Future, error) {
	args := append([]string{key}, triples...)
	return c.Do(buildCmd(specGeoAdd, args...))
}

// GeoPosCmd submits GEOPOS key member [member...].
func (c *Conn) GeoPosCmd(key string, members ...string) (Future, error) {
	args := append([]string{key}, members...)
	return c.Do(buildCmd(specGeoPos, args...))
}

// GeoDist submits GEODIST key member1 member2 [unit].
func (c *Conn) GeoDist(key, member1, member2 string, unit ...string) (Future, error) {
	args := append([]string{key, member1, member2}, unit...)
	return c.Do(buildCmd(specGeoDist, args...))
}

// Ping submits PING [message].
func (c *Conn) Ping(message ...string) (Future, error) {
	return c.Do(buildCmd(specPing, message...))
}

// Echo submits ECHO message.
func (c *Conn) Echo(message string) (Future, error) {
	return c.Do(buildCmd(specEcho, message))
}

// ClientSetName submits CLIENT SETNAME name, a multi-word opcode that
// resp.Command never re-splits — it travels as two pre-split words.
func (c *Conn) ClientSetName(name string) (Future, error) {
	return c.Do(buildCmd(specClientName, name))
}

// ObjectEncoding submits OBJECT ENCODING key.
func (c *Conn) ObjectEncoding(key string) (Future, error) {
	return c.Do(buildCmd(specObjectEncode, key))
}

// QuitCmd submits QUIT. The caller is responsible for closing the
// connection afterward; the server closes its half regardless.
func (c *Conn) QuitCmd() (Future, error) {
	return c.Do(buildCmd(specQuit))
}

// Sort submits SORT key [modifiers...] — BY/LIMIT/GET/ALPHA/ORDER
// modifiers are always enabled and pass through verbatim as trailing
// arguments, matching how the wire protocol itself has no separate
// "debug-only" grammar for them.
func (c *Conn) Sort(key string, modifiers ...string) (Future, error) {
	args := append([]string{key}, modifiers...)
	return c.Do(buildCmd(specSort, args...))
}

// Wait submits WAIT numreplicas timeout.
func (c *Conn) Wait(numReplicas int, timeoutMillis int64) (Future, error) {
	return c.Do(buildCmd(specWait, strconv.Itoa(numReplicas), strconv.FormatInt(timeoutMillis, 10)))
}
