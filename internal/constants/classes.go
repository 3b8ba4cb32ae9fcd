package constants

// ClassType is the vendor class-type code carried on a booked class.
type ClassType string

const (
	ClassTypeOrange60   ClassType = "ORANGE_60"
	ClassTypeOrange90   ClassType = "ORANGE_90"
	ClassTypeStrength50 ClassType = "STRENGTH_50"
	ClassTypeTread50    ClassType = "TREAD_50"
	ClassTypeOther      ClassType = "OTHER"

	DefaultClassDurationMin = 60
)

// ClassDurationsMin maps known class types to their length in minutes.
var ClassDurationsMin = map[ClassType]int{
	ClassTypeOrange60:   60,
	ClassTypeOrange90:   90,
	ClassTypeStrength50: 50,
	ClassTypeTread50:    50,
}
