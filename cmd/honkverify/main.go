// honkverify checks an UltraHonk proof from the command line.
//
// Usage:
//
//	honkverify -vk circuit.vk -proof proof.bin [-inputs inputs.txt]
//	honkverify -keydir keys/ -circuit mycircuit -proof proof.bin
//
// The verification key and proof are raw binary blobs. With -keydir the key
// is resolved as <keydir>/<circuit>.vk. The inputs file, if given, holds one
// 32-byte public input per line as hex, 0x prefix optional.
package main

import (
	"bufio"
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"strings"

	ultrahonk "github.com/noirverify/go-ultrahonk"
	"github.com/noirverify/go-ultrahonk/loaders"
	"github.com/noirverify/go-ultrahonk/logger"
	"github.com/noirverify/go-ultrahonk/pairing"
)

func main() {
	var (
		vkPath     = flag.String("vk", "", "path to the verification key blob")
		keyDir     = flag.String("keydir", "", "directory of <circuit>.vk files, used with -circuit")
		circuit    = flag.String("circuit", "", "circuit name to resolve in -keydir")
		proofPath  = flag.String("proof", "", "path to the proof blob")
		inputsPath = flag.String("inputs", "", "path to the public inputs file (hex, one per line)")
		precompile = flag.Bool("precompile", false, "use the EVM-precompile-compatible pairing backend")
		verbose    = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	if *proofPath == "" || (*vkPath == "" && (*keyDir == "" || *circuit == "")) {
		flag.Usage()
		os.Exit(2)
	}
	if !*verbose {
		logger.Disable()
	}
	log := logger.Logger()

	vkBytes, err := loadKey(*vkPath, *keyDir, *circuit)
	if err != nil {
		fail("load verification key: %v", err)
	}
	proofBytes, err := os.ReadFile(*proofPath)
	if err != nil {
		fail("read proof: %v", err)
	}
	inputs, err := readInputs(*inputsPath)
	if err != nil {
		fail("read public inputs: %v", err)
	}

	opts := []ultrahonk.Option{ultrahonk.WithLogger(log)}
	if *precompile {
		opts = append(opts, ultrahonk.WithPairingBackend(pairing.Precompile{}))
	}

	ok, err := ultrahonk.Verify(vkBytes, proofBytes, inputs, opts...)
	if err != nil {
		fail("verification failed: %v", err)
	}
	if !ok {
		fail("proof is invalid")
	}
	fmt.Println("proof is valid")
}

func loadKey(vkPath, keyDir, circuit string) ([]byte, error) {
	if vkPath != "" {
		return os.ReadFile(vkPath)
	}
	return loaders.FSKeyLoader{Dir: keyDir}.Load(circuit)
}

func readInputs(path string) ([][]byte, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var inputs [][]byte
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		b, err := hex.DecodeString(strings.TrimPrefix(line, "0x"))
		if err != nil {
			return nil, fmt.Errorf("line %q: %w", line, err)
		}
		inputs = append(inputs, b)
	}
	return inputs, scanner.Err()
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
