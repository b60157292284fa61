package main

import (
	"strings"
	"time"

	"farmkv"
	"farmkv/farm"
	"farmkv/util"

	"github.com/pkg/errors"
	"github.com/tidwall/redcon"
)

const resultOK = "OK"

var (
	errSyntax         = errors.New("ERR syntax error")
	errValueIsInvalid = errors.New("ERR value is not an integer or out of range")
	errOutOfRange     = errors.New("ERR offset or length is out of range")
)

func newWrongNumOfArgsError(cmd string) error {
	return errors.Errorf("ERR wrong number of arguments for '%s' command", cmd)
}

func okReply() interface{} {
	return redcon.SimpleString(resultOK)
}

// hexReply renders a 64-bit hash as 16 hex digits. RESP integers are
// signed, so hashes travel as bulk strings.
func hexReply(v uint64) interface{} {
	return util.Uint64ToHex(v)
}

func replyErr(err error) error {
	switch errors.Cause(err) {
	case farmkv.ErrKeyNotFound:
		return err
	case farmkv.ErrEmptyKey, farmkv.ErrWrongNumberOfArgs, farmkv.ErrDBClosed:
		return errors.New("ERR " + err.Error())
	}
	if strings.HasPrefix(err.Error(), "ERR") {
		return err
	}
	return errors.Wrap(err, "ERR")
}

// +-------+--------+----------+------------+-----------+-------+---------+
// |------------------------ string commands ------------------------|
// +-------+--------+----------+------------+-----------+-------+---------+

// set key value
func set(cli *Client, args [][]byte) (interface{}, error) {
	if len(args) != 2 {
		return nil, newWrongNumOfArgsError("set")
	}
	if err := cli.db.Set(args[0], args[1]); err != nil {
		return nil, replyErr(err)
	}
	return okReply(), nil
}

// setex key seconds value
func setEX(cli *Client, args [][]byte) (interface{}, error) {
	if len(args) != 3 {
		return nil, newWrongNumOfArgsError("setex")
	}
	seconds, err := util.StrToInt64(string(args[1]))
	if err != nil || seconds <= 0 {
		return nil, errValueIsInvalid
	}
	if err := cli.db.SetEX(args[0], args[2], time.Duration(seconds)*time.Second); err != nil {
		return nil, replyErr(err)
	}
	return okReply(), nil
}

// setnx key value
func setNX(cli *Client, args [][]byte) (interface{}, error) {
	if len(args) != 2 {
		return nil, newWrongNumOfArgsError("setnx")
	}
	ok, err := cli.db.SetNX(args[0], args[1])
	if err != nil {
		return nil, replyErr(err)
	}
	if ok {
		return 1, nil
	}
	return 0, nil
}

// get key
func get(cli *Client, args [][]byte) (interface{}, error) {
	if len(args) != 1 {
		return nil, newWrongNumOfArgsError("get")
	}
	value, err := cli.db.Get(args[0])
	if err != nil {
		return nil, replyErr(err)
	}
	return value, nil
}

// mget key [key ...]
func mGet(cli *Client, args [][]byte) (interface{}, error) {
	if len(args) < 1 {
		return nil, newWrongNumOfArgsError("mget")
	}
	values, err := cli.db.MGet(args)
	if err != nil {
		return nil, replyErr(err)
	}
	// Missing keys reply nil, not an empty bulk string.
	res := make([]interface{}, len(values))
	for i, v := range values {
		if v != nil {
			res[i] = v
		}
	}
	return res, nil
}

// getdel key
func getDel(cli *Client, args [][]byte) (interface{}, error) {
	if len(args) != 1 {
		return nil, newWrongNumOfArgsError("getdel")
	}
	value, err := cli.db.GetDel(args[0])
	if err != nil {
		return nil, replyErr(err)
	}
	if value == nil {
		return nil, nil
	}
	return value, nil
}

// strlen key
func strLen(cli *Client, args [][]byte) (interface{}, error) {
	if len(args) != 1 {
		return nil, newWrongNumOfArgsError("strlen")
	}
	return cli.db.StrLen(args[0]), nil
}

// del key [key ...]
func del(cli *Client, args [][]byte) (interface{}, error) {
	if len(args) < 1 {
		return nil, newWrongNumOfArgsError("del")
	}
	var deleted int
	for _, key := range args {
		if !cli.db.Exists(key) {
			continue
		}
		if err := cli.db.Delete(key); err != nil {
			return nil, replyErr(err)
		}
		deleted++
	}
	return deleted, nil
}

// exists key [key ...]
func exists(cli *Client, args [][]byte) (interface{}, error) {
	if len(args) < 1 {
		return nil, newWrongNumOfArgsError("exists")
	}
	var n int
	for _, key := range args {
		if cli.db.Exists(key) {
			n++
		}
	}
	return n, nil
}

// expire key seconds
func expire(cli *Client, args [][]byte) (interface{}, error) {
	if len(args) != 2 {
		return nil, newWrongNumOfArgsError("expire")
	}
	seconds, err := util.StrToInt64(string(args[1]))
	if err != nil {
		return nil, errValueIsInvalid
	}
	if seconds <= 0 {
		// Like redis, a non-positive ttl deletes the key.
		n, err := del(cli, args[:1])
		return n, err
	}
	err = cli.db.Expire(args[0], time.Duration(seconds)*time.Second)
	if err == farmkv.ErrKeyNotFound {
		return 0, nil
	}
	if err != nil {
		return nil, replyErr(err)
	}
	return 1, nil
}

// ttl key: -2 when key is missing, -1 when it never expires.
func ttl(cli *Client, args [][]byte) (interface{}, error) {
	if len(args) != 1 {
		return nil, newWrongNumOfArgsError("ttl")
	}
	sec, err := cli.db.TTL(args[0])
	if err == farmkv.ErrKeyNotFound {
		return -2, nil
	}
	if err != nil {
		return nil, replyErr(err)
	}
	if sec == 0 {
		return -1, nil
	}
	return sec, nil
}

// persist key
func persist(cli *Client, args [][]byte) (interface{}, error) {
	if len(args) != 1 {
		return nil, newWrongNumOfArgsError("persist")
	}
	err := cli.db.Persist(args[0])
	if err == farmkv.ErrKeyNotFound {
		return 0, nil
	}
	if err != nil {
		return nil, replyErr(err)
	}
	return 1, nil
}

// scan prefix count [pattern]
func scan(cli *Client, args [][]byte) (interface{}, error) {
	if len(args) != 2 && len(args) != 3 {
		return nil, newWrongNumOfArgsError("scan")
	}
	count, err := util.StrToInt(string(args[1]))
	if err != nil {
		return nil, errValueIsInvalid
	}
	var pattern string
	if len(args) == 3 {
		pattern = string(args[2])
	}
	res, err := cli.db.Scan(args[0], pattern, count)
	if err != nil {
		return nil, replyErr(err)
	}
	if res == nil {
		return [][]byte{}, nil
	}
	return res, nil
}

// dbsize
func dbSize(cli *Client, args [][]byte) (interface{}, error) {
	if len(args) != 0 {
		return nil, newWrongNumOfArgsError("dbsize")
	}
	return cli.db.Count(), nil
}

// +-------+--------+----------+------------+-----------+-------+---------+
// |------------------------- hash commands -------------------------|
// +-------+--------+----------+------------+-----------+-------+---------+

// fingerprint key
func fingerprint(cli *Client, args [][]byte) (interface{}, error) {
	if len(args) != 1 {
		return nil, newWrongNumOfArgsError("fingerprint")
	}
	fp, err := cli.db.Fingerprint(args[0])
	if err != nil {
		return nil, replyErr(err)
	}
	return hexReply(fp), nil
}

// farmhash64 payload [offset length]
func farmHash64(cli *Client, args [][]byte) (interface{}, error) {
	switch len(args) {
	case 1:
		return hexReply(farm.Hash64(args[0])), nil
	case 3:
		offset, err := util.StrToInt(string(args[1]))
		if err != nil {
			return nil, errValueIsInvalid
		}
		length, err := util.StrToInt(string(args[2]))
		if err != nil {
			return nil, errValueIsInvalid
		}
		h, err := farm.Hash64At(args[0], offset, length)
		if err != nil {
			return nil, errOutOfRange
		}
		return hexReply(h), nil
	default:
		return nil, newWrongNumOfArgsError("farmhash64")
	}
}

// murmur64 payload
func murmur64(cli *Client, args [][]byte) (interface{}, error) {
	if len(args) != 1 {
		return nil, newWrongNumOfArgsError("murmur64")
	}
	return hexReply(util.MurmurHash(args[0])), nil
}

// keyshard key
func keyShard(cli *Client, args [][]byte) (interface{}, error) {
	if len(args) != 1 {
		return nil, newWrongNumOfArgsError("keyshard")
	}
	if len(args[0]) == 0 {
		return nil, errSyntax
	}
	return cli.db.ShardOf(args[0]), nil
}

// +-------+--------+----------+------------+-----------+-------+---------+
// |---------------------- connection / server -----------------------|
// +-------+--------+----------+------------+-----------+-------+---------+

// ping [message]
func ping(cli *Client, args [][]byte) (interface{}, error) {
	switch len(args) {
	case 0:
		return redcon.SimpleString("PONG"), nil
	case 1:
		return args[0], nil
	default:
		return nil, newWrongNumOfArgsError("ping")
	}
}

// info
func info(cli *Client, args [][]byte) (interface{}, error) {
	if cli.svr == nil {
		return nil, errClientIsNil
	}
	return cli.svr.info(), nil
}
