package isa

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Instruction", func() {
	var c *Counter

	BeforeEach(func() {
		c = NewCounter()
	})

	It("should assign increasing IDs in construction order", func() {
		first, ok := ParseLine(c, "mload, 0, ct0_a", MFactory())
		Expect(ok).To(BeTrue())

		second, ok := ParseLine(c, "cexit", CFactory())
		Expect(ok).To(BeTrue())

		Expect(second.ID()).To(Equal(first.ID() + 1))
	})

	It("should reject too few tokens", func() {
		_, err := parseDStore(c, []string{"dstore", "ct0_a"}, "")
		Expect(err).To(MatchError(ErrFormat))
	})

	It("should reject a wrong opcode keyword", func() {
		_, err := parseDStore(c, []string{"dload", "ct0_a", "5"}, "")
		Expect(err).To(MatchError(ErrFormat))
	})

	It("should preserve trailing tokens verbatim", func() {
		in, ok := ParseLine(c, "msyncc, 3, extra, fields", MFactory())
		Expect(ok).To(BeTrue())
		Expect(in.Tokens()).To(Equal([]string{"msyncc", "3", "extra", "fields"}))
		Expect(in.ToLine()).To(Equal("msyncc, 3, extra, fields"))
	})

	It("should round-trip the comment", func() {
		in, ok := ParseLine(c, "mload, 0, ct0_a # load ct0_a", MFactory())
		Expect(ok).To(BeTrue())
		Expect(in.Comment()).To(Equal(" load ct0_a"))
		Expect(in.ToLine()).To(Equal("mload, 0, ct0_a # load ct0_a"))
	})

	It("should not match a line no candidate accepts", func() {
		in, ok := ParseLine(c, "frobnicate, 1, 2", MFactory())
		Expect(ok).To(BeFalse())
		Expect(in).To(BeNil())
	})
})

var _ = Describe("DInst", func() {
	var c *Counter

	BeforeEach(func() {
		c = NewCounter()
	})

	parse := func(line string) *DInst {
		in, ok := ParseLine(c, line, DFactory())
		ExpectWithOffset(1, ok).To(BeTrue())
		return in.(*DInst)
	}

	It("should parse the short dload form without a variable", func() {
		d := parse("dload, poly, 7")
		Expect(d.Kind).To(Equal(DLoad))
		Expect(d.Var).To(Equal(""))
		Expect(d.Address).To(Equal(7))
	})

	It("should parse the long dload form", func() {
		d := parse("dload, poly, 7, ct0_x")
		Expect(d.Var).To(Equal("ct0_x"))
		Expect(d.Address).To(Equal(7))
	})

	It("should parse dstore and dkeygen operands", func() {
		d := parse("dstore, ct0_res, 2")
		Expect(d.Kind).To(Equal(DStore))
		Expect(d.Var).To(Equal("ct0_res"))
		Expect(d.Address).To(Equal(2))

		d = parse("dkeygen, 0, 1, rlk_k0")
		Expect(d.Kind).To(Equal(DKeyGen))
		Expect(d.Var).To(Equal("rlk_k0"))
	})

	It("should reject a negative or non-numeric address", func() {
		_, err := parseDLoad(c, []string{"dload", "poly", "-1"}, "")
		Expect(err).To(MatchError(ErrFormat))

		_, err = parseDStore(c, []string{"dstore", "ct0_a", "addr"}, "")
		Expect(err).To(MatchError(ErrFormat))
	})

	It("should serialize a renamed variable", func() {
		d := parse("dstore, ct0_res, 2")
		d.Var = "out_res"
		Expect(d.ToLine()).To(Equal("dstore, out_res, 2"))

		d = parse("dload, poly, 0, ct0_x # input")
		d.Var = "in_x"
		Expect(d.ToLine()).To(Equal("dload, poly, 0, in_x # input"))
	})
})

var _ = Describe("MInst and CInst", func() {
	var c *Counter

	BeforeEach(func() {
		c = NewCounter()
	})

	It("should classify load-class and store-class variants", func() {
		in, ok := ParseLine(c, "mload, 0, ct0_a", MFactory())
		Expect(ok).To(BeTrue())
		m := in.(*MInst)
		Expect(m.IsLoad()).To(BeTrue())
		Expect(m.IsStore()).To(BeFalse())
		Expect(m.Source()).To(Equal("ct0_a"))

		in, ok = ParseLine(c, "mstore, ct0_res, 4", MFactory())
		Expect(ok).To(BeTrue())
		m = in.(*MInst)
		Expect(m.IsStore()).To(BeTrue())
		Expect(m.Dest()).To(Equal("ct0_res"))

		in, ok = ParseLine(c, "msyncc, 1", MFactory())
		Expect(ok).To(BeTrue())
		m = in.(*MInst)
		Expect(m.IsLoad()).To(BeFalse())
		Expect(m.IsStore()).To(BeFalse())
	})

	It("should expose the variable operand of each control variant", func() {
		in, ok := ParseLine(c, "bload, 0, rlk_k0, 2", CFactory())
		Expect(ok).To(BeTrue())
		Expect(in.(*CInst).Source()).To(Equal("rlk_k0"))

		in, ok = ParseLine(c, "cstore, ct0_res", CFactory())
		Expect(ok).To(BeTrue())
		ci := in.(*CInst)
		Expect(ci.IsStore()).To(BeTrue())
		Expect(ci.Dest()).To(Equal("ct0_res"))

		in, ok = ParseLine(c, "csyncm, 0", CFactory())
		Expect(ok).To(BeTrue())
		ci = in.(*CInst)
		Expect(ci.IsLoad()).To(BeFalse())
		Expect(ci.IsStore()).To(BeFalse())
	})

	It("should rewrite the renamed operand in place", func() {
		in, ok := ParseLine(c, "cload, r0, ct0_a # spill ct0_a", CFactory())
		Expect(ok).To(BeTrue())
		ci := in.(*CInst)
		Expect(ci.Source()).To(Equal("ct0_a"))
		ci.SetSource("x_a")
		Expect(ci.ToLine()).To(Equal("cload, r0, x_a # spill ct0_a"))
	})
})
