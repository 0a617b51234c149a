package linker

import (
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/helink/isa"
	"github.com/sarchlab/helink/kerntrace"
)

var _ = Describe("RemapDInstVars", func() {
	var (
		c  *isa.Counter
		op *kerntrace.KernelOp
	)

	BeforeEach(func() {
		c = isa.NewCounter()
		var err error
		// Trace order is [y, x]; positional indices bind against the
		// label-sorted order [x, y].
		op, err = kerntrace.NewKernelOp("add",
			kerntrace.ContextConfig{Scheme: "bgv", PolyModDegree: 8192, KeyRNSTerms: 2},
			[]string{"y-8192-2", "x-8192-2"})
		Expect(err).NotTo(HaveOccurred())
	})

	dinst := func(line string) *isa.DInst {
		in, ok := isa.ParseLine(c, line, isa.DFactory())
		ExpectWithOffset(1, ok).To(BeTrue())
		return in.(*isa.DInst)
	}

	It("should rename positional arguments against the sorted labels", func() {
		d0 := dinst("dload, poly, 0, ct0_foo")
		d1 := dinst("dload, poly, 1, ct1_foo")

		remap, err := RemapDInstVars([]*isa.DInst{d0, d1}, op)
		Expect(err).NotTo(HaveOccurred())

		Expect(d0.Var).To(Equal("x_foo"))
		Expect(d1.Var).To(Equal("y_foo"))
		Expect(remap).To(Equal(map[string]string{
			"ct0_foo": "x_foo",
			"ct1_foo": "y_foo",
		}))
	})

	It("should rename plaintext prefixes too", func() {
		d := dinst("dstore, pt1_res, 4")

		remap, err := RemapDInstVars([]*isa.DInst{d}, op)
		Expect(err).NotTo(HaveOccurred())

		Expect(d.Var).To(Equal("y_res"))
		Expect(remap).To(HaveKeyWithValue("pt1_res", "y_res"))
	})

	It("should never rename infrastructure prefixes", func() {
		reserved := []string{
			"ntt_aux", "intt_aux", "ones_p0", "ipsi_t", "psi_t", "rlk_k0", "twid_t0",
		}
		var dinsts []*isa.DInst
		for i, name := range reserved {
			dinsts = append(dinsts, dinst(fmt.Sprintf("dload, poly, %d, %s", i, name)))
		}

		remap, err := RemapDInstVars(dinsts, op)
		Expect(err).NotTo(HaveOccurred())

		Expect(remap).To(BeEmpty())
		for i, d := range dinsts {
			Expect(d.Var).To(Equal(reserved[i]))
		}
	})

	It("should keep one dictionary entry for a repeated variable", func() {
		d0 := dinst("dload, poly, 0, ct0_foo")
		d1 := dinst("dload, poly, 1, ct0_foo")

		remap, err := RemapDInstVars([]*isa.DInst{d0, d1}, op)
		Expect(err).NotTo(HaveOccurred())

		Expect(d0.Var).To(Equal("x_foo"))
		Expect(d1.Var).To(Equal("x_foo"))
		Expect(remap).To(Equal(map[string]string{"ct0_foo": "x_foo"}))
	})

	It("should fail when the index has no bound argument", func() {
		d := dinst("dload, poly, 0, ct2_foo")
		_, err := RemapDInstVars([]*isa.DInst{d}, op)
		Expect(err).To(MatchError(ErrRange))
	})

	It("should fail on a variable without a prefix separator", func() {
		d := dinst("dload, poly, 0, ctfoo")
		_, err := RemapDInstVars([]*isa.DInst{d}, op)
		Expect(err).To(MatchError(ErrFormat))
	})

	It("should fail on an argument prefix without an index", func() {
		d := dinst("dload, poly, 0, ct_foo")
		_, err := RemapDInstVars([]*isa.DInst{d}, op)
		Expect(err).To(MatchError(ErrFormat))
	})
})

var _ = Describe("RemapMCInstVars", func() {
	var c *isa.Counter

	BeforeEach(func() {
		c = isa.NewCounter()
	})

	parse := func(line string, candidates []isa.TryParse) isa.Instruction {
		in, ok := isa.ParseLine(c, line, candidates)
		ExpectWithOffset(1, ok).To(BeTrue())
		return in
	}

	remap := map[string]string{"ct0_a": "x_a", "ct0_res": "x_res"}

	It("should rewrite load sources, store dests, and their comments", func() {
		load := parse("mload, 0, ct0_a # bring in ct0_a", isa.MFactory())
		store := parse("mstore, ct0_res, 2", isa.MFactory())
		cload := parse("cload, r0, ct0_a", isa.CFactory())
		cstore := parse("cstore, ct0_res # flush ct0_res", isa.CFactory())

		err := RemapMCInstVars([]isa.Instruction{load, store, cload, cstore}, remap)
		Expect(err).NotTo(HaveOccurred())

		Expect(load.ToLine()).To(Equal("mload, 0, x_a # bring in x_a"))
		Expect(store.ToLine()).To(Equal("mstore, x_res, 2"))
		Expect(cload.ToLine()).To(Equal("cload, r0, x_a"))
		Expect(cstore.ToLine()).To(Equal("cstore, x_res # flush x_res"))
	})

	It("should leave unrelated operands and sync instructions alone", func() {
		other := parse("mload, 0, ct1_b", isa.MFactory())
		sync := parse("msyncc, 0", isa.MFactory())
		ones := parse("bones, ones_p0, 1", isa.CFactory())

		err := RemapMCInstVars([]isa.Instruction{other, sync, ones}, remap)
		Expect(err).NotTo(HaveOccurred())

		Expect(other.ToLine()).To(Equal("mload, 0, ct1_b"))
		Expect(sync.ToLine()).To(Equal("msyncc, 0"))
		Expect(ones.ToLine()).To(Equal("bones, ones_p0, 1"))
	})

	It("should be idempotent after the first application", func() {
		load := parse("mload, 0, ct0_a", isa.MFactory())

		Expect(RemapMCInstVars([]isa.Instruction{load}, remap)).To(Succeed())
		Expect(RemapMCInstVars([]isa.Instruction{load}, remap)).To(Succeed())

		Expect(load.ToLine()).To(Equal("mload, 0, x_a"))
	})

	It("should do nothing for an empty dictionary", func() {
		xinst := parse("bexit", isa.XFactory())

		// Type validation is skipped entirely on the empty dictionary.
		err := RemapMCInstVars([]isa.Instruction{xinst}, map[string]string{})
		Expect(err).NotTo(HaveOccurred())
	})

	It("should reject foreign instruction types before mutating anything", func() {
		load := parse("mload, 0, ct0_a", isa.MFactory())
		xinst := parse("bexit", isa.XFactory())

		err := RemapMCInstVars([]isa.Instruction{load, xinst}, remap)
		Expect(err).To(MatchError(ErrType))

		Expect(load.ToLine()).To(Equal("mload, 0, ct0_a"))
	})
})
