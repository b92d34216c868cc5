package main

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/Layr-Labs/merkle-accumulator-go/pkg/config"
	"github.com/Layr-Labs/merkle-accumulator-go/pkg/hasher"
	"github.com/Layr-Labs/merkle-accumulator-go/pkg/merkle"
	"github.com/Layr-Labs/merkle-accumulator-go/pkg/store"
	badgerstore "github.com/Layr-Labs/merkle-accumulator-go/pkg/store/badger"
	memorystore "github.com/Layr-Labs/merkle-accumulator-go/pkg/store/memory"
	redisstore "github.com/Layr-Labs/merkle-accumulator-go/pkg/store/redis"
)

func main() {
	app := &cli.App{
		Name:  "accumulator",
		Usage: "Merkle accumulator CLI",
		Description: `Commits a set of byte strings into a single fixed-size merkle root and
produces compact membership proofs against it.

Items are read one per line from a file or stdin. The tree is a pure function
of the item ordering; pass --sort for a content-addressed commitment that is
independent of input order.`,
		Version: "1.0.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "hasher",
				Value:   string(config.HasherKeccak256),
				Usage:   "Hash primitive: " + config.SupportedHashersString(),
				EnvVars: []string{config.EnvHasher},
			},
			&cli.BoolFlag{
				Name:  "hex",
				Usage: "Treat input items as hex-encoded byte strings",
			},
			&cli.BoolFlag{
				Name:  "sort",
				Usage: "Sort items bytewise before building, for order-independent roots",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Enable debug logging",
				EnvVars: []string{config.EnvVerbose},
			},
		},
		Commands: []*cli.Command{
			rootCommand(),
			commitCommand(),
			proveCommand(),
			verifyCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func rootCommand() *cli.Command {
	return &cli.Command{
		Name:      "root",
		Usage:     "Build the tree and print its root hash",
		ArgsUsage: "[items-file]",
		Action: func(c *cli.Context) error {
			tree, err := buildTree(c)
			if err != nil {
				return err
			}
			fmt.Println(tree.Root)
			return nil
		},
	}
}

func commitCommand() *cli.Command {
	return &cli.Command{
		Name:      "commit",
		Usage:     "Build the tree, emit its commitment record, and optionally persist it",
		ArgsUsage: "[items-file]",
		Flags: []cli.Flag{
			&cli.Uint64Flag{
				Name:     "storage-id",
				Aliases:  []string{"id"},
				Usage:    "32-bit identifier baked into the commitment record",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "store",
				Usage:   "Commitment store backend: " + strings.Join(config.SupportedStoreTypes(), ", ") + " (empty: print only)",
				EnvVars: []string{config.EnvStoreType},
			},
			&cli.StringFlag{
				Name:    "badger-path",
				Value:   "./accumulator-data",
				Usage:   "Data directory for the badger store",
				EnvVars: []string{config.EnvBadgerPath},
			},
			&cli.StringFlag{
				Name:    "redis-address",
				Usage:   "Redis server address (host:port)",
				EnvVars: []string{config.EnvRedisAddress},
			},
			&cli.StringFlag{
				Name:    "redis-password",
				Usage:   "Redis password",
				EnvVars: []string{config.EnvRedisPassword},
			},
			&cli.IntFlag{
				Name:    "redis-db",
				Usage:   "Redis database number (0-15)",
				EnvVars: []string{config.EnvRedisDB},
			},
		},
		Action: func(c *cli.Context) error {
			logger, err := newLogger(c.Bool("verbose"))
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			storageID := c.Uint64("storage-id")
			if storageID > 0xFFFFFFFF {
				return fmt.Errorf("storage-id %d does not fit in 32 bits", storageID)
			}

			tree, err := buildTree(c)
			if err != nil {
				return err
			}

			record := tree.Serialize(uint32(storageID))
			fmt.Println(common.Bytes2Hex(record))

			if c.String("store") == "" {
				return nil
			}

			st, err := openStore(c, logger)
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			if err := st.SaveCommitment(&store.Record{
				StorageID:   uint32(storageID),
				Raw:         record,
				SubmittedAt: time.Now().Unix(),
			}); err != nil {
				return fmt.Errorf("failed to persist commitment: %w", err)
			}

			logger.Sugar().Infow("Commitment persisted",
				"storageId", storageID,
				"root", tree.Root.String(),
			)
			return nil
		},
	}
}

func proveCommand() *cli.Command {
	return &cli.Command{
		Name:      "prove",
		Usage:     "Print the membership proof for an item, one sibling hash per line",
		ArgsUsage: "[items-file]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "item",
				Usage:    "Item to prove membership of (hex if --hex is set)",
				Required: true,
			},
		},
		Action: func(c *cli.Context) error {
			tree, err := buildTree(c)
			if err != nil {
				return err
			}

			item, err := decodeItem(c.String("item"), c.Bool("hex"))
			if err != nil {
				return err
			}

			proof, err := tree.Prove(item)
			if err != nil {
				return err
			}

			for _, sibling := range proof {
				fmt.Println(sibling)
			}
			return nil
		},
	}
}

func verifyCommand() *cli.Command {
	return &cli.Command{
		Name:  "verify",
		Usage: "Check a membership proof against a root; exits nonzero if invalid",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "root",
				Usage:    "Expected root hash (hex)",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "item",
				Usage:    "Item the proof is for (hex if --hex is set)",
				Required: true,
			},
			&cli.StringSliceFlag{
				Name:  "sibling",
				Usage: "Proof sibling hashes (hex), leaf-to-root order; repeat per hash",
			},
		},
		Action: func(c *cli.Context) error {
			h, err := selectHasher(c.String("hasher"))
			if err != nil {
				return err
			}

			root, err := decodeHash(c.String("root"))
			if err != nil {
				return fmt.Errorf("invalid root: %w", err)
			}

			item, err := decodeItem(c.String("item"), c.Bool("hex"))
			if err != nil {
				return err
			}

			proof := make(merkle.Proof, 0, len(c.StringSlice("sibling")))
			for _, s := range c.StringSlice("sibling") {
				sibling, err := decodeHash(s)
				if err != nil {
					return fmt.Errorf("invalid sibling %q: %w", s, err)
				}
				proof = append(proof, sibling)
			}

			if !merkle.Verify(h, root, proof, item) {
				fmt.Println("invalid")
				return cli.Exit("", 1)
			}
			fmt.Println("valid")
			return nil
		},
	}
}

// buildTree reads items per the global flags and builds the tree.
func buildTree(c *cli.Context) (*merkle.Tree, error) {
	h, err := selectHasher(c.String("hasher"))
	if err != nil {
		return nil, err
	}

	items, err := readItems(c.Args().First(), c.Bool("hex"), c.Bool("sort"))
	if err != nil {
		return nil, err
	}

	return merkle.New(h, items)
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func selectHasher(name string) (hasher.Hasher, error) {
	switch config.HasherName(name) {
	case config.HasherKeccak256:
		return hasher.Keccak256{}, nil
	case config.HasherSHA3256:
		return hasher.SHA3256{}, nil
	default:
		return nil, fmt.Errorf("unknown hasher %q (supported: %s)", name, config.SupportedHashersString())
	}
}

// readItems reads newline-delimited items from path ("" or "-" means stdin).
// Blank lines are skipped. With sortItems the items are ordered bytewise so
// the resulting root is independent of input order.
func readItems(path string, hexEncoded, sortItems bool) ([][]byte, error) {
	var r io.Reader
	if path == "" || path == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open items file: %w", err)
		}
		defer func() { _ = f.Close() }()
		r = f
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var items [][]byte
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		item, err := decodeItem(line, hexEncoded)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read items: %w", err)
	}

	if sortItems {
		sort.Slice(items, func(i, j int) bool {
			return bytes.Compare(items[i], items[j]) < 0
		})
	}
	return items, nil
}

func decodeItem(s string, hexEncoded bool) ([]byte, error) {
	if !hexEncoded {
		return []byte(s), nil
	}
	item, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid hex item %q: %w", s, err)
	}
	return item, nil
}

func decodeHash(s string) (hasher.Hash, error) {
	raw, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return hasher.Hash{}, err
	}
	if len(raw) != hasher.Size {
		return hasher.Hash{}, fmt.Errorf("expected %d bytes, got %d", hasher.Size, len(raw))
	}
	var h hasher.Hash
	copy(h[:], raw)
	return h, nil
}

// openStore builds the configured commitment store backend.
func openStore(c *cli.Context, logger *zap.Logger) (store.CommitmentStore, error) {
	cfg := &config.StoreConfig{
		Type:          config.StoreType(c.String("store")),
		BadgerPath:    c.String("badger-path"),
		RedisAddress:  c.String("redis-address"),
		RedisPassword: c.String("redis-password"),
		RedisDB:       c.Int("redis-db"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Type {
	case config.StoreTypeMemory:
		logger.Warn("memory store keeps no data across runs; use badger or redis for real storage")
		return memorystore.NewMemoryStore(), nil
	case config.StoreTypeBadger:
		return badgerstore.NewBadgerStore(cfg.BadgerPath, logger)
	case config.StoreTypeRedis:
		return redisstore.NewRedisStore(&redisstore.RedisConfig{
			Address:  cfg.RedisAddress,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}, logger)
	default:
		return nil, fmt.Errorf("unsupported store type: %s", cfg.Type)
	}
}
