package main

import (
	"fmt"
	"time"

	"farmkv"
	"farmkv/farm"
)

func main() {
	opts := farmkv.DefaultOptions()
	opts.Shards = 4
	db, err := farmkv.Open(opts)
	if err != nil {
		fmt.Printf("open farmkv err: %v", err)
		return
	}
	defer func() {
		_ = db.Close()
	}()

	fruits := []string{"watermelon", "grape", "orange", "apple"}
	for _, fruit := range fruits {
		if err := db.SetEX([]byte(fruit), []byte("in stock"), time.Minute); err != nil {
			fmt.Printf("SetEX error: %v", err)
		}
	}

	for _, fruit := range fruits {
		fp, err := db.Fingerprint([]byte(fruit))
		if err != nil {
			fmt.Printf("Fingerprint error: %v", err)
			continue
		}
		fmt.Printf("%-10s shard=%d fingerprint=%016x\n", fruit, db.ShardOf([]byte(fruit)), fp)
	}

	// The span and windowed forms agree on the same bytes.
	buf := []byte("**apple**")
	h, err := farm.Hash64At(buf, 2, 5)
	if err != nil {
		fmt.Printf("Hash64At error: %v", err)
		return
	}
	fmt.Printf("apple: %016x == %016x\n", h, farm.Hash64String("apple"))

	d := farm.New()
	_, _ = d.Write([]byte("app"))
	_, _ = d.Write([]byte("le"))
	fmt.Printf("streamed apple: %016x\n", d.Sum64())
}
