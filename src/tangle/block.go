package tangle

import (
	"bytes"
	"crypto/ecdsa"
	"fmt"
	"sort"

	"github.com/ecoblock/ecoblock/src/common"
	"github.com/ecoblock/ecoblock/src/crypto"
	"github.com/ecoblock/ecoblock/src/crypto/keys"
	"github.com/ugorji/go/codec"
)

/*******************************************************************************
BlockBody
*******************************************************************************/

// BlockBody is the content-addressed part of a Block.
type BlockBody struct {
	Payload []byte   //opaque application data
	Parents []string //sorted, de-duplicated ids of the parent blocks
}

// Marshal returns the canonical JSON encoding of a BlockBody.
func (b *BlockBody) Marshal() ([]byte, error) {
	return canonicalEncode(b)
}

// Unmarshal converts a canonical JSON encoded BlockBody to a BlockBody.
func (b *BlockBody) Unmarshal(data []byte) error {
	return canonicalDecode(data, b)
}

// Hash returns the SHA256 hash of the canonical encoding of the body.
func (b *BlockBody) Hash() ([]byte, error) {
	hashBytes, err := b.Marshal()
	if err != nil {
		return nil, err
	}
	return crypto.SHA256(hashBytes), nil
}

/*******************************************************************************
Block
*******************************************************************************/

// Block is a node of the tangle. Its id is derived from the body only, so it
// can be computed before signing and never changes afterwards.
type Block struct {
	Body      BlockBody
	Creator   []byte //creator's public key, set by Sign
	Signature string //creator's signature of the body hash

	hash []byte
	hex  string
}

// NewBlock creates a block with the given payload and parents and computes its
// id. Parents are treated as a set: duplicates are dropped and the order they
// are given in does not matter.
func NewBlock(payload []byte, parents []string) *Block {
	p := make([]byte, len(payload))
	copy(p, payload)

	block := &Block{
		Body: BlockBody{
			Payload: p,
			Parents: normalizeParents(parents),
		},
	}

	if err := block.computeHash(); err != nil {
		// a BlockBody only holds bytes and strings, which always encode
		panic(fmt.Sprintf("encoding block body: %v", err))
	}

	return block
}

func normalizeParents(parents []string) []string {
	res := make([]string, 0, len(parents))
	seen := make(map[string]bool, len(parents))
	for _, p := range parents {
		if !seen[p] {
			seen[p] = true
			res = append(res, p)
		}
	}
	sort.Strings(res)
	return res
}

func (b *Block) computeHash() error {
	hash, err := b.Body.Hash()
	if err != nil {
		return err
	}
	b.hash = hash
	b.hex = common.EncodeToString(hash)
	return nil
}

// Hash returns the SHA256 hash of the canonical body.
func (b *Block) Hash() []byte {
	return b.hash
}

// Hex returns the block id: the 0X-prefixed hex of Hash.
func (b *Block) Hex() string {
	return b.hex
}

// Payload returns the block's payload.
func (b *Block) Payload() []byte {
	return b.Body.Payload
}

// Parents returns the sorted ids of the block's parents.
func (b *Block) Parents() []string {
	return b.Body.Parents
}

// IsGenesis is true for blocks without parents.
func (b *Block) IsGenesis() bool {
	return len(b.Body.Parents) == 0
}

// Sign signs the block hash with an ecdsa key and records the signer's public
// key as the creator.
func (b *Block) Sign(privKey *ecdsa.PrivateKey) error {
	R, S, err := keys.Sign(privKey, b.hash)
	if err != nil {
		return err
	}

	b.Creator = keys.FromPublicKey(&privKey.PublicKey)
	b.Signature = keys.EncodeSignature(R, S)

	return nil
}

// Verify verifies the block's signature against its creator. Unsigned blocks
// do not verify.
func (b *Block) Verify() (bool, error) {
	if len(b.Creator) == 0 || b.Signature == "" {
		return false, nil
	}

	pubKey := keys.ToPublicKey(b.Creator)
	if pubKey == nil {
		return false, fmt.Errorf("invalid creator public key")
	}

	r, s, err := keys.DecodeSignature(b.Signature)
	if err != nil {
		return false, err
	}
	if r == nil || s == nil {
		return false, fmt.Errorf("malformed signature")
	}

	return keys.Verify(pubKey, b.hash, r, s), nil
}

type blockWrapper struct {
	Body      BlockBody
	Creator   []byte
	Signature string
}

// MarshalDB returns the encoding used to persist a Block.
func (b *Block) MarshalDB() ([]byte, error) {
	return canonicalEncode(blockWrapper{
		Body:      b.Body,
		Creator:   b.Creator,
		Signature: b.Signature,
	})
}

// UnmarshalDB decodes the output of MarshalDB and recomputes the block id.
func (b *Block) UnmarshalDB(data []byte) error {
	var wrapper blockWrapper

	if err := canonicalDecode(data, &wrapper); err != nil {
		return err
	}

	b.Body = wrapper.Body
	if b.Body.Payload == nil {
		b.Body.Payload = []byte{}
	}
	if b.Body.Parents == nil {
		b.Body.Parents = []string{}
	}
	b.Creator = wrapper.Creator
	b.Signature = wrapper.Signature

	return b.computeHash()
}

func canonicalEncode(v interface{}) ([]byte, error) {
	b := new(bytes.Buffer)
	jh := new(codec.JsonHandle)
	jh.Canonical = true
	enc := codec.NewEncoder(b, jh)

	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	return b.Bytes(), nil
}

func canonicalDecode(data []byte, v interface{}) error {
	jh := new(codec.JsonHandle)
	jh.Canonical = true
	dec := codec.NewDecoderBytes(data, jh)

	return dec.Decode(v)
}
