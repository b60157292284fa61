package main

import (
	"strings"

	"farmkv"

	"github.com/tidwall/redcon"
)

type cmdHandler func(cli *Client, args [][]byte) (interface{}, error)

var supportedCommands = map[string]cmdHandler{
	// string commands
	"set":     set,
	"get":     get,
	"mget":    mGet,
	"getdel":  getDel,
	"setex":   setEX,
	"setnx":   setNX,
	"strlen":  strLen,
	"del":     del,
	"exists":  exists,
	"expire":  expire,
	"ttl":     ttl,
	"persist": persist,
	"scan":    scan,
	"dbsize":  dbSize,

	// hash commands
	"fingerprint": fingerprint,
	"farmhash64":  farmHash64,
	"murmur64":    murmur64,
	"keyshard":    keyShard,

	// connection management commands
	"ping": ping,
	"quit": nil,

	// server management commands
	"info": info,
}

type Client struct {
	svr *Server
	db  *farmkv.DB
}

func execClientCommand(conn redcon.Conn, cmd redcon.Command) {
	command := strings.ToLower(string(cmd.Args[0]))
	cmdFunc, ok := supportedCommands[command]
	if !ok {
		conn.WriteError("ERR unsupported command '" + string(cmd.Args[0]) + "'")
		return
	}

	cli, _ := conn.Context().(*Client)
	if cli == nil {
		conn.WriteError(errClientIsNil.Error())
		return
	}
	switch command {
	case "quit":
		conn.WriteString("OK")
		_ = conn.Close()
	default:
		if res, err := cmdFunc(cli, cmd.Args[1:]); err != nil {
			if err == farmkv.ErrKeyNotFound {
				conn.WriteNull()
			} else {
				conn.WriteError(err.Error())
			}
		} else {
			conn.WriteAny(res)
		}
	}
}
