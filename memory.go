package intcode

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Memory is the sparse address space of a program. Addresses that were never
// written read as 0.
type Memory map[int64]int64

func NewMemory(words ...int64) Memory {
	mem := make(Memory, len(words))
	for addr, word := range words {
		mem[int64(addr)] = word
	}
	return mem
}

func (m Memory) Read(addr int64) int64 {
	return m[addr]
}

func (m Memory) Write(addr, value int64) {
	m[addr] = value
}

// Clone returns a deep copy that shares nothing with m.
func (m Memory) Clone() Memory {
	if m == nil {
		return Memory{}
	}
	return maps.Clone(m)
}

// Addresses lists every address holding a cell, in ascending order.
func (m Memory) Addresses() []int64 {
	addrs := maps.Keys(m)
	slices.Sort(addrs)
	return addrs
}

// Len is one past the highest address holding a cell.
func (m Memory) Len() int64 {
	n := int64(0)
	for addr := range m {
		if addr >= n {
			n = addr + 1
		}
	}
	return n
}

// Dump returns the dense image of addresses 0 to Len()-1.
func (m Memory) Dump() []int64 {
	words := make([]int64, m.Len())
	for addr, word := range m {
		if addr >= 0 {
			words[addr] = word
		}
	}
	return words
}
