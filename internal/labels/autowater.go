package labels

// AutoWater is the project identifier of the irrigation controller firmware.
const AutoWater = "AutoWater"

// Label widths are fixed by the firmware and must not be trimmed.
func autoWater() *Tables {
	return &Tables{
		Project: AutoWater,
		Types: LabelSet{
			"Init ",
			"Check",
			"Doing",
			"Alarm",
		},
		Codes: LabelSet{
			"All     ",
			"SD      ",
			"Sensors ",
			"Pump    ",
			"Rtc     ",
			"Sensor 0",
			"Sensor 1",
		},
		Details: LabelSet{
			"Finished                  ",
			"All bad                   ",
			"Error read file           ",
			"Set state BAD             ",
			"Set state OK              ",
			"Bad value                 ",
			"Error write file          ",
			"Correct updated           ",
			"File removed              ",
			"Watering updated          ",
			"Enabled                   ",
			"Disabled                  ",
			"Stopped                   ",
			"Now less than last correct",
			"Override                  ",
			"Measure completed         ",
			"Measures writed           ",
			"Stop                      ",
		},
		StateCodes: LabelSet{
			"RTC_ERR    ",
			"SD_READ    ",
			"SD_WRITE   ",
			"SENSOR0_ERR",
			"SENSOR1_ERR",
			"MASK_32    ",
			"MASK_64    ",
			"PUMP_ENABLE",
		},
	}
}

func builtin() []*Tables {
	return []*Tables{autoWater()}
}
