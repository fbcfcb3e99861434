package schema

import "strconv"

// Version is the schema version written into every model.
const Version = 3

// FileIdentifier is the flatbuffer file identifier of TFLite models.
const FileIdentifier = "TFL3"

// TensorType is the element type of a tensor.
type TensorType int8

// Tensor types.
const (
	TensorTypeFLOAT32 TensorType = 0
	TensorTypeFLOAT16 TensorType = 1
	TensorTypeINT32   TensorType = 2
	TensorTypeUINT8   TensorType = 3
	TensorTypeINT64   TensorType = 4
	TensorTypeSTRING  TensorType = 5
	TensorTypeBOOL    TensorType = 6
	TensorTypeINT16   TensorType = 7
	TensorTypeINT8    TensorType = 9
	TensorTypeFLOAT64 TensorType = 10
	TensorTypeUINT64  TensorType = 12
	TensorTypeUINT32  TensorType = 15
	TensorTypeUINT16  TensorType = 16
)

var tensorTypeNames = map[TensorType]string{
	TensorTypeFLOAT32: "FLOAT32",
	TensorTypeFLOAT16: "FLOAT16",
	TensorTypeINT32:   "INT32",
	TensorTypeUINT8:   "UINT8",
	TensorTypeINT64:   "INT64",
	TensorTypeSTRING:  "STRING",
	TensorTypeBOOL:    "BOOL",
	TensorTypeINT16:   "INT16",
	TensorTypeINT8:    "INT8",
	TensorTypeFLOAT64: "FLOAT64",
	TensorTypeUINT64:  "UINT64",
	TensorTypeUINT32:  "UINT32",
	TensorTypeUINT16:  "UINT16",
}

func (v TensorType) String() string {
	if s, ok := tensorTypeNames[v]; ok {
		return s
	}
	return "TensorType(" + strconv.FormatInt(int64(v), 10) + ")"
}

// BuiltinOperator identifies a TFLite builtin kernel.
type BuiltinOperator int32

// Builtin operators emitted by the lowering engine.
const (
	BuiltinOperatorADD                     BuiltinOperator = 0
	BuiltinOperatorAVERAGE_POOL_2D         BuiltinOperator = 1
	BuiltinOperatorCONCATENATION           BuiltinOperator = 2
	BuiltinOperatorCONV_2D                 BuiltinOperator = 3
	BuiltinOperatorDEPTHWISE_CONV_2D       BuiltinOperator = 4
	BuiltinOperatorFLOOR                   BuiltinOperator = 8
	BuiltinOperatorFULLY_CONNECTED         BuiltinOperator = 9
	BuiltinOperatorL2_POOL_2D              BuiltinOperator = 12
	BuiltinOperatorLOGISTIC                BuiltinOperator = 14
	BuiltinOperatorMAX_POOL_2D             BuiltinOperator = 17
	BuiltinOperatorMUL                     BuiltinOperator = 18
	BuiltinOperatorRELU                    BuiltinOperator = 19
	BuiltinOperatorRELU_N1_TO_1            BuiltinOperator = 20
	BuiltinOperatorRELU6                   BuiltinOperator = 21
	BuiltinOperatorRESHAPE                 BuiltinOperator = 22
	BuiltinOperatorRESIZE_BILINEAR         BuiltinOperator = 23
	BuiltinOperatorSOFTMAX                 BuiltinOperator = 25
	BuiltinOperatorTANH                    BuiltinOperator = 28
	BuiltinOperatorPAD                     BuiltinOperator = 34
	BuiltinOperatorGATHER                  BuiltinOperator = 36
	BuiltinOperatorTRANSPOSE               BuiltinOperator = 39
	BuiltinOperatorMEAN                    BuiltinOperator = 40
	BuiltinOperatorSUB                     BuiltinOperator = 41
	BuiltinOperatorDIV                     BuiltinOperator = 42
	BuiltinOperatorSTRIDED_SLICE           BuiltinOperator = 45
	BuiltinOperatorEXP                     BuiltinOperator = 47
	BuiltinOperatorCAST                    BuiltinOperator = 53
	BuiltinOperatorPRELU                   BuiltinOperator = 54
	BuiltinOperatorMAXIMUM                 BuiltinOperator = 55
	BuiltinOperatorARG_MAX                 BuiltinOperator = 56
	BuiltinOperatorMINIMUM                 BuiltinOperator = 57
	BuiltinOperatorLESS                    BuiltinOperator = 58
	BuiltinOperatorNEG                     BuiltinOperator = 59
	BuiltinOperatorPADV2                   BuiltinOperator = 60
	BuiltinOperatorGREATER                 BuiltinOperator = 61
	BuiltinOperatorGREATER_EQUAL           BuiltinOperator = 62
	BuiltinOperatorLESS_EQUAL              BuiltinOperator = 63
	BuiltinOperatorSLICE                   BuiltinOperator = 65
	BuiltinOperatorSIN                     BuiltinOperator = 66
	BuiltinOperatorTRANSPOSE_CONV          BuiltinOperator = 67
	BuiltinOperatorEQUAL                   BuiltinOperator = 71
	BuiltinOperatorNOT_EQUAL               BuiltinOperator = 72
	BuiltinOperatorLOG                     BuiltinOperator = 73
	BuiltinOperatorSUM                     BuiltinOperator = 74
	BuiltinOperatorSQRT                    BuiltinOperator = 75
	BuiltinOperatorPOW                     BuiltinOperator = 78
	BuiltinOperatorARG_MIN                 BuiltinOperator = 79
	BuiltinOperatorREDUCE_PROD             BuiltinOperator = 81
	BuiltinOperatorREDUCE_MAX              BuiltinOperator = 82
	BuiltinOperatorLOGICAL_OR              BuiltinOperator = 84
	BuiltinOperatorLOGICAL_AND             BuiltinOperator = 86
	BuiltinOperatorLOGICAL_NOT             BuiltinOperator = 87
	BuiltinOperatorREDUCE_MIN              BuiltinOperator = 89
	BuiltinOperatorRESIZE_NEAREST_NEIGHBOR BuiltinOperator = 97
	BuiltinOperatorLEAKY_RELU              BuiltinOperator = 98
	BuiltinOperatorMIRROR_PAD              BuiltinOperator = 100
	BuiltinOperatorABS                     BuiltinOperator = 101
	BuiltinOperatorSPLIT_V                 BuiltinOperator = 102
	BuiltinOperatorCEIL                    BuiltinOperator = 104
	BuiltinOperatorCOS                     BuiltinOperator = 108
	BuiltinOperatorELU                     BuiltinOperator = 111
	BuiltinOperatorHARD_SWISH              BuiltinOperator = 117
	BuiltinOperatorSELECT_V2               BuiltinOperator = 123
	BuiltinOperatorBATCH_MATMUL            BuiltinOperator = 126
	// Codes above this value are stored in OperatorCode.builtin_code only.
	BuiltinOperatorPLACEHOLDER_FOR_GREATER_OP_CODES BuiltinOperator = 127
	BuiltinOperatorBROADCAST_TO                     BuiltinOperator = 130
	BuiltinOperatorGELU                             BuiltinOperator = 150
	BuiltinOperatorRELU_0_TO_1                      BuiltinOperator = 152
	BuiltinOperatorSIGN                             BuiltinOperator = 158
)

var builtinOperatorNames = map[BuiltinOperator]string{
	BuiltinOperatorADD:                     "ADD",
	BuiltinOperatorAVERAGE_POOL_2D:         "AVERAGE_POOL_2D",
	BuiltinOperatorCONCATENATION:           "CONCATENATION",
	BuiltinOperatorCONV_2D:                 "CONV_2D",
	BuiltinOperatorDEPTHWISE_CONV_2D:       "DEPTHWISE_CONV_2D",
	BuiltinOperatorFLOOR:                   "FLOOR",
	BuiltinOperatorFULLY_CONNECTED:         "FULLY_CONNECTED",
	BuiltinOperatorL2_POOL_2D:              "L2_POOL_2D",
	BuiltinOperatorLOGISTIC:                "LOGISTIC",
	BuiltinOperatorMAX_POOL_2D:             "MAX_POOL_2D",
	BuiltinOperatorMUL:                     "MUL",
	BuiltinOperatorRELU:                    "RELU",
	BuiltinOperatorRELU_N1_TO_1:            "RELU_N1_TO_1",
	BuiltinOperatorRELU6:                   "RELU6",
	BuiltinOperatorRESHAPE:                 "RESHAPE",
	BuiltinOperatorRESIZE_BILINEAR:         "RESIZE_BILINEAR",
	BuiltinOperatorSOFTMAX:                 "SOFTMAX",
	BuiltinOperatorTANH:                    "TANH",
	BuiltinOperatorPAD:                     "PAD",
	BuiltinOperatorGATHER:                  "GATHER",
	BuiltinOperatorTRANSPOSE:               "TRANSPOSE",
	BuiltinOperatorMEAN:                    "MEAN",
	BuiltinOperatorSUB:                     "SUB",
	BuiltinOperatorDIV:                     "DIV",
	BuiltinOperatorSTRIDED_SLICE:           "STRIDED_SLICE",
	BuiltinOperatorEXP:                     "EXP",
	BuiltinOperatorCAST:                    "CAST",
	BuiltinOperatorPRELU:                   "PRELU",
	BuiltinOperatorMAXIMUM:                 "MAXIMUM",
	BuiltinOperatorARG_MAX:                 "ARG_MAX",
	BuiltinOperatorMINIMUM:                 "MINIMUM",
	BuiltinOperatorLESS:                    "LESS",
	BuiltinOperatorNEG:                     "NEG",
	BuiltinOperatorPADV2:                   "PADV2",
	BuiltinOperatorGREATER:                 "GREATER",
	BuiltinOperatorGREATER_EQUAL:           "GREATER_EQUAL",
	BuiltinOperatorLESS_EQUAL:              "LESS_EQUAL",
	BuiltinOperatorSLICE:                   "SLICE",
	BuiltinOperatorSIN:                     "SIN",
	BuiltinOperatorTRANSPOSE_CONV:          "TRANSPOSE_CONV",
	BuiltinOperatorEQUAL:                   "EQUAL",
	BuiltinOperatorNOT_EQUAL:               "NOT_EQUAL",
	BuiltinOperatorLOG:                     "LOG",
	BuiltinOperatorSUM:                     "SUM",
	BuiltinOperatorSQRT:                    "SQRT",
	BuiltinOperatorPOW:                     "POW",
	BuiltinOperatorARG_MIN:                 "ARG_MIN",
	BuiltinOperatorREDUCE_PROD:             "REDUCE_PROD",
	BuiltinOperatorREDUCE_MAX:              "REDUCE_MAX",
	BuiltinOperatorLOGICAL_OR:              "LOGICAL_OR",
	BuiltinOperatorLOGICAL_AND:             "LOGICAL_AND",
	BuiltinOperatorLOGICAL_NOT:             "LOGICAL_NOT",
	BuiltinOperatorREDUCE_MIN:              "REDUCE_MIN",
	BuiltinOperatorRESIZE_NEAREST_NEIGHBOR: "RESIZE_NEAREST_NEIGHBOR",
	BuiltinOperatorLEAKY_RELU:              "LEAKY_RELU",
	BuiltinOperatorMIRROR_PAD:              "MIRROR_PAD",
	BuiltinOperatorABS:                     "ABS",
	BuiltinOperatorSPLIT_V:                 "SPLIT_V",
	BuiltinOperatorCEIL:                    "CEIL",
	BuiltinOperatorCOS:                     "COS",
	BuiltinOperatorELU:                     "ELU",
	BuiltinOperatorHARD_SWISH:              "HARD_SWISH",
	BuiltinOperatorSELECT_V2:               "SELECT_V2",
	BuiltinOperatorBATCH_MATMUL:            "BATCH_MATMUL",
	BuiltinOperatorPLACEHOLDER_FOR_GREATER_OP_CODES: "PLACEHOLDER_FOR_GREATER_OP_CODES",
	BuiltinOperatorBROADCAST_TO:                     "BROADCAST_TO",
	BuiltinOperatorGELU:                             "GELU",
	BuiltinOperatorRELU_0_TO_1:                      "RELU_0_TO_1",
	BuiltinOperatorSIGN:                             "SIGN",
}

func (v BuiltinOperator) String() string {
	if s, ok := builtinOperatorNames[v]; ok {
		return s
	}
	return "BuiltinOperator(" + strconv.FormatInt(int64(v), 10) + ")"
}

// BuiltinOptions is the union tag of Operator.builtin_options.
type BuiltinOptions byte

// Builtin option types emitted by the lowering engine.
const (
	BuiltinOptionsNONE                         BuiltinOptions = 0
	BuiltinOptionsConv2DOptions                BuiltinOptions = 1
	BuiltinOptionsDepthwiseConv2DOptions       BuiltinOptions = 2
	BuiltinOptionsPool2DOptions                BuiltinOptions = 5
	BuiltinOptionsFullyConnectedOptions        BuiltinOptions = 8
	BuiltinOptionsSoftmaxOptions               BuiltinOptions = 9
	BuiltinOptionsConcatenationOptions         BuiltinOptions = 10
	BuiltinOptionsResizeBilinearOptions        BuiltinOptions = 15
	BuiltinOptionsReshapeOptions               BuiltinOptions = 17
	BuiltinOptionsGatherOptions                BuiltinOptions = 23
	BuiltinOptionsReducerOptions               BuiltinOptions = 27
	BuiltinOptionsStridedSliceOptions          BuiltinOptions = 32
	BuiltinOptionsCastOptions                  BuiltinOptions = 37
	BuiltinOptionsArgMaxOptions                BuiltinOptions = 40
	BuiltinOptionsTransposeConvOptions         BuiltinOptions = 49
	BuiltinOptionsArgMinOptions                BuiltinOptions = 57
	BuiltinOptionsResizeNearestNeighborOptions BuiltinOptions = 74
	BuiltinOptionsLeakyReluOptions             BuiltinOptions = 75
	BuiltinOptionsMirrorPadOptions             BuiltinOptions = 77
	BuiltinOptionsSplitVOptions                BuiltinOptions = 79
	BuiltinOptionsBatchMatMulOptions           BuiltinOptions = 101
)

// Padding is the implicit padding scheme of convolutions and pools.
type Padding int8

// Padding schemes.
const (
	PaddingSAME  Padding = 0
	PaddingVALID Padding = 1
)

func (v Padding) String() string {
	if v == PaddingSAME {
		return "SAME"
	}
	return "VALID"
}

// ActivationFunctionType is a fused activation.
type ActivationFunctionType int8

// Fused activations.
const (
	ActivationFunctionTypeNONE ActivationFunctionType = 0
	ActivationFunctionTypeRELU ActivationFunctionType = 1
)

// MirrorPadMode selects reflection or symmetric mirror padding.
type MirrorPadMode int8

// Mirror padding modes.
const (
	MirrorPadModeREFLECT   MirrorPadMode = 0
	MirrorPadModeSYMMETRIC MirrorPadMode = 1
)
