package store

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"

	bolt "go.etcd.io/bbolt"

	. "github.com/victor23k/shush/pkg/store/storedefs"
)

const bucketCmd = "cmd"

func init() {
	initDB["initialize command history table"] = func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketCmd))
		return err
	}
}

// NextCmdSeq returns the next sequence number of the command history.
func (s *dbStore) NextCmdSeq() (int, error) {
	var seq uint64
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketCmd))
		seq = b.Sequence() + 1
		return nil
	})
	return int(seq), err
}

// AddCmd adds a new command to the command history. The Seq field of cmd is
// ignored; the sequence number assigned to the command is returned.
func (s *dbStore) AddCmd(cmd Cmd) (int, error) {
	var (
		seq uint64
		err error
	)
	err = s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketCmd))
		seq, err = b.NextSequence()
		if err != nil {
			return err
		}
		return b.Put(marshalSeq(seq), marshalCmd(cmd))
	})
	return int(seq), err
}

// DelCmd deletes a command history item with the given sequence number.
func (s *dbStore) DelCmd(seq int) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketCmd))
		return b.Delete(marshalSeq(uint64(seq)))
	})
}

// Cmd queries the command history item with the specified sequence number.
func (s *dbStore) Cmd(seq int) (Cmd, error) {
	var cmd Cmd
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketCmd))
		v := b.Get(marshalSeq(uint64(seq)))
		if v == nil {
			return ErrNoMatchingCmd
		}
		var err error
		cmd, err = unmarshalCmd(uint64(seq), v)
		return err
	})
	return cmd, err
}

// IterateCmds iterates all the commands in the specified range, and calls the
// callback with the content of each command sequentially.
func (s *dbStore) IterateCmds(from, upto int, f func(Cmd)) error {
	return s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketCmd))
		c := b.Cursor()
		for k, v := c.Seek(marshalSeq(uint64(from))); k != nil && unmarshalSeq(k) < uint64(upto); k, v = c.Next() {
			cmd, err := unmarshalCmd(unmarshalSeq(k), v)
			if err != nil {
				return err
			}
			f(cmd)
		}
		return nil
	})
}

// CmdsWithSeq returns all commands within the specified range.
func (s *dbStore) CmdsWithSeq(from, upto int) ([]Cmd, error) {
	var cmds []Cmd
	err := s.IterateCmds(from, upto, func(cmd Cmd) {
		cmds = append(cmds, cmd)
	})
	return cmds, err
}

// NextCmd finds the first command after the given sequence number (inclusive)
// with the given prefix.
func (s *dbStore) NextCmd(from int, prefix string) (Cmd, error) {
	var cmd Cmd
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketCmd))
		c := b.Cursor()
		for k, v := c.Seek(marshalSeq(uint64(from))); k != nil; k, v = c.Next() {
			found, err := unmarshalCmd(unmarshalSeq(k), v)
			if err != nil {
				return err
			}
			if strings.HasPrefix(found.Text, prefix) {
				cmd = found
				return nil
			}
		}
		return ErrNoMatchingCmd
	})
	return cmd, err
}

// PrevCmd finds the last command before the given sequence number (exclusive)
// with the given prefix.
func (s *dbStore) PrevCmd(upto int, prefix string) (Cmd, error) {
	var cmd Cmd
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketCmd))
		c := b.Cursor()

		var v []byte
		k, _ := c.Seek(marshalSeq(uint64(upto)))
		if k == nil { // upto > LAST
			k, v = c.Last()
			if k == nil {
				return ErrNoMatchingCmd
			}
		} else {
			k, v = c.Prev() // upto exists, find the previous one
		}

		for ; k != nil; k, v = c.Prev() {
			found, err := unmarshalCmd(unmarshalSeq(k), v)
			if err != nil {
				return err
			}
			if strings.HasPrefix(found.Text, prefix) {
				cmd = found
				return nil
			}
		}
		return ErrNoMatchingCmd
	})
	return cmd, err
}

func marshalSeq(seq uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, seq)
	return b
}

func unmarshalSeq(key []byte) uint64 {
	return binary.BigEndian.Uint64(key)
}

// A command is stored as timestamp;text;success. The text may itself contain
// semicolons, so the first and the last separator delimit it.
func marshalCmd(cmd Cmd) []byte {
	return []byte(strconv.FormatInt(cmd.Timestamp, 10) + ";" + cmd.Text + ";" +
		strconv.FormatBool(cmd.Success))
}

func unmarshalCmd(seq uint64, v []byte) (Cmd, error) {
	s := string(v)
	first := strings.IndexByte(s, ';')
	last := strings.LastIndexByte(s, ';')
	if first < 0 || first == last {
		return Cmd{}, fmt.Errorf("bad command history entry %d: %q", seq, s)
	}
	timestamp, err := strconv.ParseInt(s[:first], 10, 64)
	if err != nil {
		return Cmd{}, fmt.Errorf("bad timestamp in command history entry %d: %w", seq, err)
	}
	success, err := strconv.ParseBool(s[last+1:])
	if err != nil {
		return Cmd{}, fmt.Errorf("bad status in command history entry %d: %w", seq, err)
	}
	return Cmd{Seq: int(seq), Text: s[first+1 : last], Timestamp: timestamp, Success: success}, nil
}
