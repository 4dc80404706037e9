package main

import (
	"context"
	"flag"
	"io"
	"log"
	"math/rand"
	"os"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/kokes/orcwrite/src/compress"
	"github.com/kokes/orcwrite/src/data"
	"github.com/kokes/orcwrite/src/orcfile"
	"github.com/kokes/orcwrite/src/schema"
	"github.com/kokes/orcwrite/src/sink"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "sample.orc", "path to write the ORC file to")
	rows := flag.Int("rows", 1000, "number of sample rows to generate")
	compression := flag.String("compression", "none", "compression codec: none, zlib, snappy, lz4, zstd")
	s3Bucket := flag.String("s3-bucket", "", "if set, upload the file to this S3 bucket instead of a local path")
	flag.Parse()

	kind, err := compress.ParseKind(*compression)
	if err != nil {
		return err
	}

	var w io.WriteCloser
	if *s3Bucket != "" {
		cfg, err := config.LoadDefaultConfig(context.Background())
		if err != nil {
			return err
		}
		client := s3.NewFromConfig(cfg)
		w = sink.NewS3(context.Background(), client, *s3Bucket, *out)
	} else {
		f, err := os.Create(*out)
		if err != nil {
			return err
		}
		w = f
	}
	defer w.Close()

	s := sampleSchema()
	wcfg := orcfile.DefaultConfig()
	wcfg.Compression = kind

	writer, err := orcfile.Open(w, s, wcfg)
	if err != nil {
		return err
	}

	root := writer.Data().(*data.StructNode)
	id := root.Child(0).(*data.LongNode)
	name := root.Child(1).(*data.StringNode)
	score := root.Child(2).(*data.DoubleNode)

	rng := rand.New(rand.NewSource(1))
	names := []string{"alpha", "bravo", "charlie", "delta", "echo"}
	for i := 0; i < *rows; i++ {
		if err := root.Write(true); err != nil {
			return err
		}
		v := int64(i)
		if err := id.Write(&v); err != nil {
			return err
		}
		n := []byte(names[rng.Intn(len(names))])
		if err := name.Write(n); err != nil {
			return err
		}
		sc := rng.Float64() * 100
		if err := score.Write(&sc); err != nil {
			return err
		}
		if err := writer.WriteBatch(1); err != nil {
			return err
		}
	}

	if err := writer.Finish(); err != nil {
		return err
	}
	log.Printf("wrote %d rows to %s", *rows, *out)
	return nil
}

func sampleSchema() *schema.Schema {
	return schema.Struct(
		schema.Field{Name: "id", Type: schema.Long()},
		schema.Field{Name: "name", Type: schema.String()},
		schema.Field{Name: "score", Type: schema.Double()},
	)
}
