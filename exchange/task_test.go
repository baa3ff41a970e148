package exchange

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const getTaskResponse = `
<m:GetItemResponse>
  <m:ResponseMessages>
    <m:GetItemResponseMessage ResponseClass="Success">
      <m:ResponseCode>NoError</m:ResponseCode>
      <m:Items>
        <t:Task>
          <t:ItemId Id="task-1" ChangeKey="ck-1"/>
          <t:Subject>File expense report</t:Subject>
          <t:Body BodyType="Text">Receipts are in the drawer.</t:Body>
          <t:Owner>Dana Reyes</t:Owner>
          <t:Status>InProgress</t:Status>
          <t:Importance>High</t:Importance>
          <t:StartDate>2026-08-24T00:00:00Z</t:StartDate>
          <t:DueDate>2026-08-31T00:00:00Z</t:DueDate>
          <t:PercentComplete>40</t:PercentComplete>
          <t:IsComplete>false</t:IsComplete>
        </t:Task>
      </m:Items>
    </m:GetItemResponseMessage>
  </m:ResponseMessages>
</m:GetItemResponse>`

const findTasksResponse = `
<m:FindItemResponse>
  <m:ResponseMessages>
    <m:FindItemResponseMessage ResponseClass="Success">
      <m:ResponseCode>NoError</m:ResponseCode>
      <m:RootFolder TotalItemsInView="2" IncludesLastItemInRange="true">
        <t:Items>
          <t:Task>
            <t:ItemId Id="task-1" ChangeKey="ck-1"/>
            <t:Subject>File expense report</t:Subject>
          </t:Task>
          <t:Task>
            <t:ItemId Id="task-2" ChangeKey="ck-2"/>
            <t:Subject>Renew certificates</t:Subject>
          </t:Task>
        </t:Items>
      </m:RootFolder>
    </m:FindItemResponseMessage>
  </m:ResponseMessages>
</m:FindItemResponse>`

func TestTaskService_GetTask(t *testing.T) {
	svc, transport := newTestService(t)

	transport.EXPECT().
		Send(gomock.Any(), opTag("m:GetItem")).
		Return(respond(t, getTaskResponse), nil)

	task, err := svc.Tasks("").GetTask(context.Background(), "task-1")
	require.NoError(t, err)

	assert.Equal(t, "task-1", task.ID)
	assert.Equal(t, "File expense report", task.Subject)
	assert.Equal(t, "Receipts are in the drawer.", task.TextBody)
	assert.Equal(t, "Dana Reyes", task.Owner)
	assert.Equal(t, "InProgress", task.Status)
	assert.Equal(t, "High", task.Importance)
	assert.Equal(t, time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC), task.DueDate)
	assert.Equal(t, 40, task.PercentComplete)
	assert.False(t, task.IsComplete)
}

func TestTaskService_GetAllTasks(t *testing.T) {
	svc, transport := newTestService(t)

	transport.EXPECT().
		Send(gomock.Any(), opTag("m:FindItem")).
		Return(respond(t, findTasksResponse), nil)

	list, err := svc.Tasks("").GetAllTasks(context.Background())
	require.NoError(t, err)

	require.Equal(t, 2, list.Count())
	assert.Equal(t, "Renew certificates", list.Tasks[1].Subject)
}
