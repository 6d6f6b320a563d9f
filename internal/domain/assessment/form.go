package assessment

// FromForm builds a PatientData record from a flat canonical-name keyed
// form record, the shape produced by report.ConvertToFormData or a UI form.
// Unrecognized keys are ignored; values of the wrong dynamic type are
// treated as absent.
func FromForm(form map[string]any) PatientData {
	var p PatientData

	p.Age = formNumber(form, "age")
	p.SystolicBP = formNumber(form, "systolicBP")
	p.DiastolicBP = formNumber(form, "diastolicBP")
	p.RestingBP = formNumber(form, "restingBP")
	p.Cholesterol = formNumber(form, "cholesterol")
	p.HDLCholesterol = formNumber(form, "hdlCholesterol")
	p.LDLCholesterol = formNumber(form, "ldlCholesterol")
	p.Triglycerides = formNumber(form, "triglycerides")
	p.HeartRate = formNumber(form, "heartRate")
	p.MaxHeartRate = formNumber(form, "maxHeartRate")
	p.BloodSugar = formNumber(form, "bloodSugar")
	p.BMI = formNumber(form, "bmi")
	p.WaistCircumference = formNumber(form, "waistCircumference")
	p.SleepHours = formNumber(form, "sleep_hours")
	p.StressLevel = formNumber(form, "stressLevel")

	p.Smoking = formBool(form, "smoking")
	p.Diabetes = formBool(form, "diabetes")
	p.ExerciseAngina = formBool(form, "exerciseAngina")
	p.FamilyHistory = formBool(form, "familyHistory")

	if s, ok := form["gender"].(string); ok {
		p.Gender = Gender(s)
	}
	if s, ok := form["chestPainType"].(string); ok {
		p.ChestPainType = ChestPainType(s)
	}
	if s, ok := form["physicalActivity"].(string); ok {
		p.PhysicalActivity = ActivityLevel(s)
	}
	if s, ok := form["dietType"].(string); ok {
		p.DietType = s
	}
	if s, ok := form["stSlope"].(string); ok {
		p.STSlope = STSlope(s)
	}

	return p
}

func formNumber(form map[string]any, key string) *float64 {
	switch v := form[key].(type) {
	case float64:
		return Float64(v)
	case int:
		return Float64(float64(v))
	}
	return nil
}

func formBool(form map[string]any, key string) *bool {
	if v, ok := form[key].(bool); ok {
		return Bool(v)
	}
	return nil
}
