// Package sac implements the SAC (Seismic Analysis Code) time-series
// binary format: a fixed 632-byte header followed by one or two float32
// data blocks, in four on-disk variants (alphanumeric, host-binary,
// little-endian binary, big-endian binary).
package sac

// Header mirrors struct SACHeader bit-for-bit: 70 float32 fields, 40
// int32 fields, then 23 text fields (22 of 8 bytes, one of 16 bytes).
type Header struct {
	Delta, Depmin, Depmax, Scale, Odelta                     float32
	B, E, O, A, Fmt                                          float32
	T0, T1, T2, T3, T4, T5, T6, T7, T8, T9                   float32
	F                                                         float32
	Resp0, Resp1, Resp2, Resp3, Resp4                        float32
	Resp5, Resp6, Resp7, Resp8, Resp9                        float32
	Stla, Stlo, Stel, Stdp                                   float32
	Evla, Evlo, Evel, Evdp                                   float32
	Mag                                                       float32
	User0, User1, User2, User3, User4                         float32
	User5, User6, User7, User8, User9                         float32
	Dist, Az, Baz, Gcarc                                      float32
	Sb, Sdelta, Depmen                                        float32
	Cmpaz, Cmpinc                                             float32
	Xminimum, Xmaximum, Yminimum, Ymaximum                    float32
	Unused6, Unused7, Unused8, Unused9, Unused10, Unused11, Unused12 float32

	Nzyear, Nzjday, Nzhour, Nzmin, Nzsec, Nzmsec int32
	Nvhdr                                        int32
	Norid, Nevid                                  int32
	Npts                                          int32
	Nsnpts, Nwfid, Nxsize, Nysize, Unused15      int32
	Iftype, Idep, Iztype, Unused16                int32
	Iinst, Istreg, Ievreg, Ievtyp, Iqual, Isynth  int32
	Imagtyp, Imagsrc                              int32
	Unused19, Unused20, Unused21, Unused22        int32
	Unused23, Unused24, Unused25, Unused26        int32
	Leven, Lpspol, Lovrok, Lcalda, Unused27       int32

	Kstnm               string // 8
	Kevnm               string // 16
	Khole, Ko, Ka       string // 8 each
	Kt0, Kt1, Kt2, Kt3  string
	Kt4, Kt5, Kt6, Kt7  string
	Kt8, Kt9, Kf        string
	Kuser0, Kuser1, Kuser2 string
	Kcmpnm, Knetwk      string
	Kdatrd, Kinst       string
}

const (
	HeaderLen   = 632
	NumFloatHdr = 70
	NumIntHdr   = 40
	NumStrHdr   = 23

	FUndef = float32(-12345.0)
	IUndef = int32(-12345)
)

// SUndef is the SAC string-field undefined sentinel, space-padded to 8
// bytes; Kevnm uses a 16-byte variant of the same text.
const SUndef = "-12345  "

// SAC enumerated iftype values relevant to the time-series writer.
const (
	ITime = 1 // file: time series data
	IB    = 9 // zero time: start of file
)

// NewHeader returns a Header with every field set to its SAC "undefined"
// sentinel, matching NullSACHeader.
func NewHeader() *Header {
	h := &Header{}
	floats := h.floatFields()
	for _, f := range floats {
		*f = FUndef
	}

	ints := h.intFields()
	for _, f := range ints {
		*f = IUndef
	}

	strs := h.strFields()
	for _, f := range strs {
		*f = SUndef
	}
	h.Kevnm = "-12345          "

	h.Nvhdr = 6
	h.Iftype = ITime
	h.Leven = 1

	return h
}

func (h *Header) floatFields() []*float32 {
	return []*float32{
		&h.Delta, &h.Depmin, &h.Depmax, &h.Scale, &h.Odelta,
		&h.B, &h.E, &h.O, &h.A, &h.Fmt,
		&h.T0, &h.T1, &h.T2, &h.T3, &h.T4, &h.T5, &h.T6, &h.T7, &h.T8, &h.T9,
		&h.F,
		&h.Resp0, &h.Resp1, &h.Resp2, &h.Resp3, &h.Resp4,
		&h.Resp5, &h.Resp6, &h.Resp7, &h.Resp8, &h.Resp9,
		&h.Stla, &h.Stlo, &h.Stel, &h.Stdp,
		&h.Evla, &h.Evlo, &h.Evel, &h.Evdp,
		&h.Mag,
		&h.User0, &h.User1, &h.User2, &h.User3, &h.User4,
		&h.User5, &h.User6, &h.User7, &h.User8, &h.User9,
		&h.Dist, &h.Az, &h.Baz, &h.Gcarc,
		&h.Sb, &h.Sdelta, &h.Depmen,
		&h.Cmpaz, &h.Cmpinc,
		&h.Xminimum, &h.Xmaximum, &h.Yminimum, &h.Ymaximum,
		&h.Unused6, &h.Unused7, &h.Unused8, &h.Unused9, &h.Unused10, &h.Unused11, &h.Unused12,
	}
}

func (h *Header) intFields() []*int32 {
	return []*int32{
		&h.Nzyear, &h.Nzjday, &h.Nzhour, &h.Nzmin, &h.Nzsec, &h.Nzmsec,
		&h.Nvhdr,
		&h.Norid, &h.Nevid,
		&h.Npts,
		&h.Nsnpts, &h.Nwfid, &h.Nxsize, &h.Nysize, &h.Unused15,
		&h.Iftype, &h.Idep, &h.Iztype, &h.Unused16,
		&h.Iinst, &h.Istreg, &h.Ievreg, &h.Ievtyp, &h.Iqual, &h.Isynth,
		&h.Imagtyp, &h.Imagsrc,
		&h.Unused19, &h.Unused20, &h.Unused21, &h.Unused22,
		&h.Unused23, &h.Unused24, &h.Unused25, &h.Unused26,
		&h.Leven, &h.Lpspol, &h.Lovrok, &h.Lcalda, &h.Unused27,
	}
}

func (h *Header) strFields() []*string {
	return []*string{
		&h.Khole, &h.Ko, &h.Ka,
		&h.Kt0, &h.Kt1, &h.Kt2, &h.Kt3,
		&h.Kt4, &h.Kt5, &h.Kt6, &h.Kt7,
		&h.Kt8, &h.Kt9, &h.Kf,
		&h.Kuser0, &h.Kuser1, &h.Kuser2,
		&h.Kcmpnm, &h.Knetwk,
		&h.Kdatrd, &h.Kinst,
		&h.Kstnm,
	}
}
